package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Manage vector store collections",
}

var collectionCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a collection sized for the embedding model",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionCreate,
}

var collectionDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a collection and all its points",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionDelete,
}

func init() {
	collectionCmd.AddCommand(collectionCreateCmd)
	collectionCmd.AddCommand(collectionDeleteCmd)
	rootCmd.AddCommand(collectionCmd)
}

func runCollectionCreate(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	name := args[0]
	if err := collectionService.Create(cmd.Context(), name); err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	cmd.Printf("Collection %s created\n", name)
	return nil
}

func runCollectionDelete(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	name := args[0]
	if err := collectionService.Delete(cmd.Context(), name); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	cmd.Printf("Collection %s deleted\n", name)
	return nil
}
