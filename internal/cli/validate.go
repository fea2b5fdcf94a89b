package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sorakthunly/modelsafe/internal/schemafile"
	"github.com/sorakthunly/modelsafe/pkg/modelsafe"
	"github.com/sorakthunly/modelsafe/pkg/schema"
)

// errInvalidDocuments signals that at least one document failed validation.
var errInvalidDocuments = errors.New("one or more documents are invalid")

// validateFlags holds flag values for the validate command.
var validateFlags struct {
	depth        int
	associations bool
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate MODEL [FILE...]",
		Short: "Validate JSON documents against a model",
		Long:  "Deserialize each JSON document against the named model and report\nper-attribute validation errors. Reads stdin when no files are given.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runValidate,
	}
	cmd.Flags().IntVar(&validateFlags.depth, "depth", 1, "association expansion depth")
	cmd.Flags().BoolVar(&validateFlags.associations, "associations", true, "deserialize associations")
	return cmd
}

// validateResult is the JSON output shape for one document.
type validateResult struct {
	Source string        `json:"source"`
	Valid  bool          `json:"valid"`
	Model  string        `json:"model,omitempty"`
	Report schema.Report `json:"report,omitempty"`
	Error  string        `json:"error,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	reg, err := schemafile.Load(resolveSchemaPath())
	if err != nil {
		return exitError(cmd, exitUserError, fmt.Sprintf("load schema: %s", err))
	}
	model, err := reg.Lookup(args[0])
	if err != nil {
		return exitError(cmd, exitUserError, fmt.Sprintf("validate: %s", err))
	}

	sources := args[1:]
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	opts := modelsafe.DeserializeOptions{
		Validate:     true,
		Associations: validateFlags.associations,
		Depth:        validateFlags.depth,
	}

	var results []validateResult
	invalid := false
	for _, src := range sources {
		res := validateSource(model, src, &opts)
		if !res.Valid {
			invalid = true
		}
		results = append(results, res)
	}

	if flags.jsonMode {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			printResult(cmd, res)
		}
	}

	if invalid {
		return errInvalidDocuments
	}
	return nil
}

// validateSource deserializes one document and folds the outcome into a result.
func validateSource(model *schema.Model, src string, opts *modelsafe.DeserializeOptions) validateResult {
	res := validateResult{Source: src, Model: model.Name}

	data, err := readDocument(src)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		res.Error = fmt.Sprintf("parse document: %s", err)
		return res
	}

	if _, err := modelsafe.Deserialize(model, doc, opts); err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			res.Model = verr.Model
			res.Report = verr.Report
		} else {
			res.Error = err.Error()
		}
		return res
	}

	res.Valid = true
	return res
}

// readDocument reads a source file, or stdin for "-".
func readDocument(src string) ([]byte, error) {
	if src == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(src)
}

// printResult writes the human-readable outcome for one document.
func printResult(cmd *cobra.Command, res validateResult) {
	out := cmd.OutOrStdout()
	switch {
	case res.Valid:
		fmt.Fprintf(out, "%s: ok\n", res.Source)
	case res.Error != "":
		fmt.Fprintf(out, "%s: error: %s\n", res.Source, res.Error)
	default:
		fmt.Fprintf(out, "%s: invalid %s\n", res.Source, res.Model)
		for _, key := range res.Report.Keys() {
			for _, pe := range res.Report[key] {
				fmt.Fprintf(out, "  %s: %s\n", key, pe.Error())
			}
		}
	}
}
