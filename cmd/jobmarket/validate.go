package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobmarket/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON file against a JSON Schema",
	Long:  "Validates a JSON document, such as a config file or a cluster profiles report, against a JSON Schema file.",
	RunE:  runValidate,
}

var (
	validateSchema string
	validateJSON   string
)

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to JSON Schema file")
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to JSON file to validate")
	_ = validateCmd.MarkFlagRequired("schema")
	_ = validateCmd.MarkFlagRequired("json")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	err := schemas.ValidateJSON(validateSchema, validateJSON)
	if err == nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
		return nil
	}

	var ve *schemas.ValidationError
	if errors.As(err, &ve) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Validation failed")
		_, _ = fmt.Fprint(cmd.OutOrStdout(), ve.Error())
		return fmt.Errorf("%d schema violation(s) in %s", len(ve.Errors), validateJSON)
	}
	return err
}
