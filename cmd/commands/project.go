package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/langtable/langtable/internal/cli"
	"github.com/langtable/langtable/pkg/files"
	"github.com/langtable/langtable/pkg/table"
)

// ProjectInfo is the output of project info
type ProjectInfo struct {
	Name          string       `json:"name" yaml:"name"`
	Path          string       `json:"path" yaml:"path"`
	Version       string       `json:"version" yaml:"version"`
	CreatedAt     string       `json:"created_at" yaml:"created_at"`
	UpdatedAt     string       `json:"updated_at" yaml:"updated_at"`
	SourceLang    string       `json:"source_lang" yaml:"source_lang"`
	TargetLang    string       `json:"target_lang" yaml:"target_lang"`
	Description   string       `json:"description,omitempty" yaml:"description,omitempty"`
	Tags          []string     `json:"tags" yaml:"tags"`
	Counts        table.Counts `json:"counts" yaml:"counts"`
	GlossaryTerms int          `json:"glossary_terms" yaml:"glossary_terms"`
}

var (
	packFile        string
	packSourceLang  string
	packTargetLang  string
	packDescription string
	packTags        []string
	packForce       bool
	unpackForce     bool
)

// now is swapped out in tests
var now = time.Now

// NewProjectCommand creates the project command
func NewProjectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Pack, unpack and inspect project bundles",
		Long: `A project bundle (.mctp) holds a source table, a target table, their
comments and a glossary in a single JSON file.

Examples:
  # Bundle a table pair
  langtable project pack "My Mod" en_us.json ja_jp.json

  # Write the tables back out
  langtable project unpack My_Mod.mctp en_us.json ja_jp.json

  # Show what a bundle contains
  langtable project info My_Mod.mctp`,
	}

	cmd.AddCommand(newProjectPackCommand(), newProjectUnpackCommand(), newProjectInfoCommand())
	return cmd
}

func newProjectPackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack <name> <source> <target>",
		Short: "Create a project from a table pair",
		Long: `Create a project bundle from a source and a target table.

A missing target file is packed as an empty table. The bundle is written
to the project name with unsafe characters replaced, unless --file is given.`,
		Args: cobra.ExactArgs(3),
		RunE: runProjectPack,
	}

	cmd.Flags().StringVar(&packFile, "file", "", "Output path (default derived from the name)")
	cmd.Flags().StringVar(&packSourceLang, "source-lang", "en", "Source language code")
	cmd.Flags().StringVar(&packTargetLang, "target-lang", "ja", "Target language code")
	cmd.Flags().StringVarP(&packDescription, "description", "d", "", "Project description")
	cmd.Flags().StringSliceVarP(&packTags, "tag", "t", nil, "Project tag (repeatable)")
	cmd.Flags().BoolVarP(&packForce, "force", "f", false, "Overwrite an existing bundle")

	return cmd
}

func runProjectPack(cmd *cobra.Command, args []string) error {
	name, src, dst := args[0], args[1], args[2]
	if err := cli.ValidateProjectName(name); err != nil {
		return err
	}
	if err := cli.ValidateTablePath(src, true); err != nil {
		return err
	}
	if err := cli.ValidateTablePath(dst, false); err != nil {
		return err
	}

	path := packFile
	if path == "" {
		path = files.ProjectFileName(name)
	}
	if !strings.HasSuffix(strings.ToLower(path), files.ProjectExtension) {
		return fmt.Errorf("project file must end in %s: %s", files.ProjectExtension, path)
	}
	if !packForce && cli.ValidateFilePath(path) == nil {
		ok, err := cli.Confirm(fmt.Sprintf("%s exists. Overwrite?", path), false)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	p, err := files.Pack(name, src, dst, now())
	if err != nil {
		return err
	}
	p.Metadata.SourceLang = packSourceLang
	p.Metadata.TargetLang = packTargetLang
	p.Metadata.Description = packDescription
	if len(packTags) > 0 {
		p.Metadata.Tags = packTags
	}

	if err := files.WriteProject(path, p, now()); err != nil {
		return err
	}
	cli.PrintSuccess("Packed %d entries into %s", p.Data.TranslateSource.Len(), path)
	return nil
}

func newProjectUnpackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpack <project.mctp> <source> <target>",
		Short: "Write a project's tables to files",
		Long: `Write the source and target tables of a bundle to two files.

Each file is written in the format of its extension. The glossary stays
in the bundle.`,
		Args: cobra.ExactArgs(3),
		RunE: runProjectUnpack,
	}

	cmd.Flags().BoolVarP(&unpackForce, "force", "f", false, "Overwrite existing files")

	return cmd
}

func runProjectUnpack(cmd *cobra.Command, args []string) error {
	path, src, dst := args[0], args[1], args[2]
	if err := cli.ValidateTablePath(src, false); err != nil {
		return err
	}
	if err := cli.ValidateTablePath(dst, false); err != nil {
		return err
	}
	if !unpackForce {
		for _, out := range []string{src, dst} {
			if cli.ValidateFilePath(out) != nil {
				continue
			}
			ok, err := cli.Confirm(fmt.Sprintf("%s exists. Overwrite?", out), false)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
	}

	p, err := files.ReadProject(path)
	if err != nil {
		return err
	}
	if err := files.Unpack(p, src, dst, commandContext(cmd).SaveOptions()); err != nil {
		return err
	}
	cli.PrintSuccess("Unpacked %s into %s and %s", p.Name, src, dst)
	return nil
}

func newProjectInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <project.mctp>",
		Short: "Show a project's metadata and progress",
		Args:  cobra.ExactArgs(1),
		RunE:  runProjectInfo,
	}
}

func runProjectInfo(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	p, err := files.ReadProject(args[0])
	if err != nil {
		return err
	}

	info := ProjectInfo{
		Name:          p.Name,
		Path:          args[0],
		Version:       p.Version,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		SourceLang:    p.Metadata.SourceLang,
		TargetLang:    p.Metadata.TargetLang,
		Description:   p.Metadata.Description,
		Tags:          p.Metadata.Tags,
		Counts:        table.Build(p.Data.TranslateSource, p.Data.TranslateTarget).Counts(),
		GlossaryTerms: len(p.Data.Glossary),
	}
	if info.Tags == nil {
		info.Tags = []string{}
	}

	out := cmd.OutOrStdout()
	if format != "text" {
		return cli.OutputResults(out, format, info)
	}

	fmt.Fprintf(out, "Name:         %s\n", info.Name)
	fmt.Fprintf(out, "Version:      %s\n", info.Version)
	fmt.Fprintf(out, "Languages:    %s → %s\n", info.SourceLang, info.TargetLang)
	if info.Description != "" {
		fmt.Fprintf(out, "Description:  %s\n", info.Description)
	}
	if len(info.Tags) > 0 {
		fmt.Fprintf(out, "Tags:         %s\n", strings.Join(info.Tags, ", "))
	}
	fmt.Fprintf(out, "Created:      %s\n", info.CreatedAt)
	fmt.Fprintf(out, "Updated:      %s\n", info.UpdatedAt)
	fmt.Fprintf(out, "Entries:      %d (%d untranslated)\n", info.Counts.Total, info.Counts.Untranslated)
	fmt.Fprintf(out, "Glossary:     %d terms\n", info.GlossaryTerms)
	return nil
}
