package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mist/mist/internal/client"
	"github.com/spf13/viper"
)

// NewClient creates an API client from flags and MIST_* environment variables.
func NewClient() *client.Client {
	return client.New(
		viper.GetString("url"),
		client.WithToken(viper.GetString("token")),
		client.WithTimeout(viper.GetDuration("timeout")),
	)
}

func jsonOutput() bool {
	return strings.EqualFold(viper.GetString("output"), "json")
}

// PrintJSON prints data as JSON
func PrintJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	return nil
}
