// Package clidispatch builds one non-interactive cobra sub-command per
// catalog tool, feeding parsed flags through the same schema.ValuesToArgs
// choke point the interactive form uses, so both paths serialize identically.
package clidispatch

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/studiowebux/toolform/internal/catalog"
	"github.com/studiowebux/toolform/internal/schema"
	"gopkg.in/yaml.v3"
)

// Register attaches one generated sub-command per tool to root. loadToken
// reloads the bearer token immediately before invocation, matching the
// interactive loop's LoadToken contract; it may be nil.
func Register(root *cobra.Command, tools []*schema.ToolDef, client *catalog.Client, loadToken func() (token string, authType string, err error)) {
	for _, tool := range tools {
		root.AddCommand(buildCommand(tool, client, loadToken))
	}
}

func buildCommand(tool *schema.ToolDef, client *catalog.Client, loadToken func() (string, string, error)) *cobra.Command {
	fields := schema.BuildFields(tool)

	var output string
	binds := make(map[string]flagBinding, len(fields))

	cmd := &cobra.Command{
		Use:   tool.Name,
		Short: tool.Description,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := schema.NewValues(fields)
			for name, b := range binds {
				if draft, ok := b.draft(); ok {
					values[name] = draft
				}
			}
			return runTool(tool, fields, values, client, loadToken, output)
		},
	}
	cmd.Flags().StringVar(&output, "output", "json", "output format (json/yaml/text)")

	for _, f := range fields {
		binds[f.Name] = bindFlag(cmd.Flags(), f)
	}
	return cmd
}

// flagBinding reads back the parsed flag value as a Values draft string,
// reporting ok=false when the flag was left at its unset zero value.
type flagBinding struct {
	draft func() (string, bool)
}

func bindFlag(flags *pflag.FlagSet, f schema.FormField) flagBinding {
	switch f.Prop.Kind {
	case schema.KindBool:
		v := flags.Bool(f.Name, false, f.Prop.Description)
		changed := f.Name
		return flagBinding{draft: func() (string, bool) {
			if !flags.Changed(changed) {
				return "", false
			}
			return strconv.FormatBool(*v), true
		}}

	case schema.KindArrayText, schema.KindArrayEnum:
		v := flags.StringSlice(f.Name, nil, f.Prop.Description)
		changed := f.Name
		return flagBinding{draft: func() (string, bool) {
			if !flags.Changed(changed) || len(*v) == 0 {
				return "", false
			}
			data, _ := json.Marshal(*v)
			return string(data), true
		}}

	case schema.KindArrayObj:
		name := "json-" + f.Name
		v := flags.String(name, "", f.Prop.Description+" (literal JSON array)")
		return flagBinding{draft: func() (string, bool) {
			if !flags.Changed(name) {
				return "", false
			}
			return *v, true
		}}

	default:
		v := flags.String(f.Name, "", f.Prop.Description)
		changed := f.Name
		return flagBinding{draft: func() (string, bool) {
			if !flags.Changed(changed) {
				return "", false
			}
			return *v, true
		}}
	}
}

func runTool(tool *schema.ToolDef, fields []schema.FormField, values schema.Values, client *catalog.Client, loadToken func() (string, string, error), output string) error {
	if idx := schema.UnfilledRequired(fields, values); idx >= 0 {
		return fmt.Errorf("missing required flag --%s", fields[idx].Name)
	}

	if loadToken != nil {
		token, _, err := loadToken()
		if err != nil {
			return fmt.Errorf("load token: %w", err)
		}
		client.SetToken(token)
	}

	res, err := client.CallTool(tool.Name, schema.ValuesToArgs(fields, values))
	if err != nil {
		return fmt.Errorf("call tool %s: %w", tool.Name, err)
	}
	if res.IsError {
		return fmt.Errorf("%s", joinContent(res.Content))
	}

	return printResult(res, output)
}

func joinContent(content []catalog.Content) string {
	var out string
	for i, c := range content {
		if i > 0 {
			out += "\n"
		}
		out += c.Text
	}
	return out
}

func printResult(res *catalog.Result, output string) error {
	switch output {
	case "text":
		fmt.Println(joinContent(res.Content))
		return nil
	case "yaml":
		value, err := decodedValue(res)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		os.Stdout.Write(data)
		return nil
	default: // json
		value, err := decodedValue(res)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}
}

func decodedValue(res *catalog.Result) (any, error) {
	if len(res.Content) > 0 {
		return joinContent(res.Content), nil
	}
	if len(res.StructuredContent) > 0 {
		var v any
		if err := json.Unmarshal(res.StructuredContent, &v); err != nil {
			return nil, fmt.Errorf("decode structured content: %w", err)
		}
		return v, nil
	}
	return nil, nil
}
