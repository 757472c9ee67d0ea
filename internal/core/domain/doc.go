// Package domain contains the core business entities for docqa:
// documents, chunks, vector points, search results and answers.
// It has no dependencies on adapters or external services.
package domain
