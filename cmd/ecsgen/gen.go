package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wippyai/ecs-abi/codegen"
	"github.com/wippyai/ecs-abi/decl"
)

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen [flags] [schema files...]",
		Short: "Generate Go component types",
		Long:  `Gen loads component declarations and writes Go structs, descriptors and typed views for them`,
		RunE:  runGen,
	}
	cmd.Flags().StringP("config", "c", defaultConfigFile, "project config file")
	cmd.Flags().StringP("package", "p", "", "Go package name (defaults to the declaration package)")
	cmd.Flags().StringP("output", "o", "", "output file, - for stdout")
	return cmd
}

type genOptions struct {
	pkg     string
	output  string
	schemas []string
}

func resolveGenOptions(cmd *cobra.Command, args []string) (genOptions, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(path, cmd.Flags().Changed("config"))
	if err != nil {
		return genOptions{}, err
	}

	opts := genOptions{pkg: cfg.Package, output: cfg.Output, schemas: cfg.Schemas}
	if cmd.Flags().Changed("package") {
		opts.pkg, _ = cmd.Flags().GetString("package")
	}
	if cmd.Flags().Changed("output") {
		opts.output, _ = cmd.Flags().GetString("output")
	}
	if len(args) > 0 {
		opts.schemas = args
	}
	if len(opts.schemas) == 0 {
		return opts, fmt.Errorf("no schema files given and none listed in %s", path)
	}
	if opts.output == "" {
		opts.output = "-"
	}
	return opts, nil
}

func runGen(cmd *cobra.Command, args []string) error {
	opts, err := resolveGenOptions(cmd, args)
	if err != nil {
		return err
	}

	files, err := decl.LoadFiles(cmd.Context(), opts.schemas...)
	if err != nil {
		return err
	}
	if opts.pkg == "" {
		for _, f := range files {
			if f.Package != "" {
				opts.pkg = f.Package
				break
			}
		}
	}
	if opts.pkg == "" {
		return fmt.Errorf("no package name: set --package, the config or a declaration package")
	}

	src, err := codegen.GenerateFiles(opts.pkg, files...)
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err = cmd.OutOrStdout().Write(src)
		return err
	}
	if dir := filepath.Dir(opts.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(opts.output, src, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", opts.output)
	return nil
}
