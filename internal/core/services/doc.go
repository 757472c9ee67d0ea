// Package services implements the driving ports: collection lifecycle,
// ingestion, retrieval and answer synthesis. Services orchestrate the
// driven ports and hold no durable state of their own; everything
// persistent lives in the external vector store.
package services
