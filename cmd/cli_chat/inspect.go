package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"companion-llm/internal/domain"
	"companion-llm/internal/service"
)

var inspectFormat string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <text>",
	Short: "Print the emotional signal detected in a message",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		signal := service.DefaultEmotionAnalyzer.Analyze(strings.Join(args, " "))
		return render(cmd.OutOrStdout(), signal)
	},
}

var safetyCmd = &cobra.Command{
	Use:   "safety <text>",
	Short: "Print the safety verdict for a user message",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verdict := service.DefaultSafetyChecker.CheckContentSafety(strings.Join(args, " "), domain.ContentContextUserInput)
		return render(cmd.OutOrStdout(), verdict)
	},
}

func init() {
	for _, c := range []*cobra.Command{analyzeCmd, safetyCmd} {
		c.Flags().StringVarP(&inspectFormat, "output", "o", "yaml", "output format: yaml or json")
	}
}

func render(w io.Writer, v any) error {
	switch inspectFormat {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	return fmt.Errorf("unknown output format %q", inspectFormat)
}
