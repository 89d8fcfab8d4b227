package cmd

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJson  outputFormat = "json"
	outputYaml  outputFormat = "yaml"
)

func currentOutputFormat() (outputFormat, error) {
	switch f := outputFormat(viper.GetString("output")); f {
	case outputTable, outputJson, outputYaml:
		return f, nil
	case "":
		return outputTable, nil
	default:
		return "", errors.Errorf("unsupported output format %q, valid formats: table, json, yaml", f)
	}
}

// printResult writes v in the selected output format, renderTable is only
// called for the table format.
func printResult(out io.Writer, v interface{}, renderTable func(out io.Writer)) error {
	format, err := currentOutputFormat()
	if err != nil {
		return err
	}

	switch format {
	case outputJson:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)

	case outputYaml:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()

	default:
		renderTable(out)
		return nil
	}
}
