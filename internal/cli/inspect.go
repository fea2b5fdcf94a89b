package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sorakthunly/modelsafe/internal/schemafile"
	"github.com/sorakthunly/modelsafe/pkg/schema"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [MODEL]",
		Short: "Print model descriptor tables from the schema file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInspect,
	}
}

// inspectModel is the JSON output shape for one model.
type inspectModel struct {
	Name         string                        `json:"name"`
	Attributes   map[string]inspectAttribute   `json:"attributes"`
	Associations map[string]inspectAssociation `json:"associations,omitempty"`
}

type inspectAttribute struct {
	Type       string `json:"type"`
	Optional   bool   `json:"optional,omitempty"`
	HasDefault bool   `json:"has_default,omitempty"`
}

type inspectAssociation struct {
	Kind   string `json:"kind"`
	Target string `json:"target"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	reg, err := schemafile.Load(resolveSchemaPath())
	if err != nil {
		return exitError(cmd, exitUserError, fmt.Sprintf("load schema: %s", err))
	}

	names := reg.Names()
	if len(args) == 1 {
		if _, err := reg.Lookup(args[0]); err != nil {
			return exitError(cmd, exitUserError, fmt.Sprintf("inspect: %s", err))
		}
		names = []string{args[0]}
	}

	var out []inspectModel
	for _, name := range names {
		m, err := reg.Lookup(name)
		if err != nil {
			return exitError(cmd, exitSysError, fmt.Sprintf("inspect: %s", err))
		}
		im, err := describeModel(m)
		if err != nil {
			return exitError(cmd, exitUserError, fmt.Sprintf("inspect %s: %s", name, err))
		}
		out = append(out, im)
	}

	if flags.jsonMode {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, im := range out {
		printModel(cmd, im)
	}
	return nil
}

// describeModel flattens a descriptor table for display, resolving
// association targets to their names.
func describeModel(m *schema.Model) (inspectModel, error) {
	im := inspectModel{
		Name:         m.Name,
		Attributes:   make(map[string]inspectAttribute, len(m.Attributes)),
		Associations: make(map[string]inspectAssociation, len(m.Associations)),
	}
	for key, a := range m.Attributes {
		im.Attributes[key] = inspectAttribute{
			Type:       attrTypeName(a.Type),
			Optional:   a.Optional,
			HasDefault: a.Default != nil,
		}
	}
	for key, assoc := range m.Associations {
		target, err := assoc.Target.Resolve()
		if err != nil {
			return inspectModel{}, err
		}
		im.Associations[key] = inspectAssociation{Kind: assoc.Kind, Target: target.Name}
	}
	return im, nil
}

// attrTypeName renders an attribute type for display.
func attrTypeName(v schema.Validator) string {
	if v == nil {
		return "any"
	}
	return fmt.Sprintf("%T", v)
}

// printModel writes the human-readable form of one model.
func printModel(cmd *cobra.Command, im inspectModel) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", im.Name)

	attrKeys := make([]string, 0, len(im.Attributes))
	for k := range im.Attributes {
		attrKeys = append(attrKeys, k)
	}
	sort.Strings(attrKeys)
	for _, k := range attrKeys {
		a := im.Attributes[k]
		line := fmt.Sprintf("  %s: %s", k, a.Type)
		if a.Optional {
			line += " (optional)"
		}
		if a.HasDefault {
			line += " (default)"
		}
		fmt.Fprintln(out, line)
	}

	assocKeys := make([]string, 0, len(im.Associations))
	for k := range im.Associations {
		assocKeys = append(assocKeys, k)
	}
	sort.Strings(assocKeys)
	for _, k := range assocKeys {
		s := im.Associations[k]
		fmt.Fprintf(out, "  %s: %s of %s\n", k, s.Kind, s.Target)
	}
}
