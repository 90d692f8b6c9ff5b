package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	cssInput  = "static/css/input.css"
	cssOutput = "static/css/app.css"
)

func CSSCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "css",
		Short: "Build static/css/app.css with the tailwind standalone CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && cssUpToDate() {
				fmt.Println("[tailwindcss] skipped")
				return nil
			}
			return runTailwind()
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "rebuild even when the output is newer than every source")
	return cmd
}

func runTailwind() error {
	if _, err := exec.LookPath("tailwindcss"); err != nil {
		fmt.Println("Missing binary: tailwindcss")
		fmt.Println("Install from https://tailwindcss.com/blog/standalone-cli")
		return fmt.Errorf("tailwindcss not found")
	}

	start := time.Now()
	tw := exec.Command("tailwindcss", "-i", cssInput, "-o", cssOutput, "--minify")
	tw.Stdout = os.Stdout
	tw.Stderr = os.Stderr
	if err := tw.Run(); err != nil {
		return fmt.Errorf("tailwindcss: %w", err)
	}

	fmt.Printf("[tailwindcss] done (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// cssUpToDate reports whether app.css is newer than the input and every UI
// source that may carry class names.
func cssUpToDate() bool {
	inputs := []string{cssInput}
	_ = filepath.WalkDir("internal/ui", func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".go") && !strings.HasSuffix(path, "_test.go") {
			inputs = append(inputs, path)
		}
		return nil
	})
	return isUpToDate(cssOutput, inputs)
}

func isUpToDate(output string, inputs []string) bool {
	outInfo, err := os.Stat(output)
	if err != nil {
		return false
	}
	outMod := outInfo.ModTime()

	for _, input := range inputs {
		inInfo, err := os.Stat(input)
		if err != nil {
			continue
		}
		if inInfo.ModTime().After(outMod) {
			return false
		}
	}
	return true
}
