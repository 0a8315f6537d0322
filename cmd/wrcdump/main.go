// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Command wrcdump inspects the resource directory embedded in a PE/COFF
// .rsrc section, reviving the cobra dependency the teacher's go.mod
// already declared but its flag-based cmd/main.go never used.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saferwall/wrc"
)

var (
	baseVA   uint32
	codepage uint32
)

func main() {
	root := &cobra.Command{
		Use:   "wrcdump <file>",
		Short: "Inspect a raw .rsrc section's resource directory",
	}
	root.PersistentFlags().Uint32Var(&baseVA, "base-va", 0,
		"virtual address the file's offset 0 corresponds to")
	root.PersistentFlags().Uint32Var(&codepage, "codepage", uint32(wrc.CodepageASCII),
		"ANSI codepage for non-Unicode MESSAGE_TABLE entries")

	root.AddCommand(listCmd(), dumpCmd(), stringTableCmd(), versionCmd(), manifestCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStream(path string) (*wrc.Stream, error) {
	return wrc.OpenFile(path, wrc.Options{
		BaseVirtualAddress: baseVA,
		AsciiCodepage:      wrc.Codepage(codepage),
	})
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "List top-level resource types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStream(args[0])
			if err != nil {
				return err
			}
			defer s.Close()
			for _, r := range s.Resources() {
				if r.IsNamed() {
					name, err := r.Name()
					if err != nil {
						return err
					}
					fmt.Printf("%-20s name=%q\n", r.Kind(), name)
					continue
				}
				fmt.Printf("%-20s id=%d\n", r.Kind(), r.Identifier())
			}
			return nil
		},
	}
}

func dumpCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "dump <file> <kind-id>",
		Short: "Write a resource's raw payload bytes to stdout or a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStream(args[0])
			if err != nil {
				return err
			}
			defer s.Close()
			var id uint32
			if _, err := fmt.Sscanf(args[1], "%d", &id); err != nil {
				return err
			}
			r := s.ResourceByIdentifier(id)
			if r == nil {
				return fmt.Errorf("no resource with id %d", id)
			}
			item := r.Item()
			for item.SubItemCount() > 0 {
				item = item.SubItem(0)
			}
			data, err := item.Bytes()
			if err != nil {
				return err
			}
			if outPath == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			return os.WriteFile(outPath, data, 0o644)
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "output file (defaults to stdout)")
	return cmd
}

func stringTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "string-table <file>",
		Short: "Dump every STRING_TABLE entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStream(args[0])
			if err != nil {
				return err
			}
			defer s.Close()
			r := s.ResourceByKind(wrc.KindString)
			if r == nil {
				return fmt.Errorf("no STRING_TABLE resource")
			}
			st, err := r.StringTable()
			if err != nil {
				return err
			}
			for _, lcid := range st.Languages() {
				for id, value := range st.Strings(lcid) {
					fmt.Printf("lcid=0x%04x id=%d %q\n", lcid, id, value)
				}
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version <file>",
		Short: "Dump VERSION_INFORMATION string tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStream(args[0])
			if err != nil {
				return err
			}
			defer s.Close()
			r := s.ResourceByKind(wrc.KindVersion)
			if r == nil {
				return fmt.Errorf("no VERSION_INFORMATION resource")
			}
			v, err := r.Version()
			if err != nil {
				return err
			}
			for _, lcid := range v.Translations() {
				fmt.Printf("translation lcid=0x%04x\n", lcid)
				for k, val := range v.Strings(lcid) {
					fmt.Printf("  %s = %q\n", k, val)
				}
			}
			return nil
		},
	}
}

func manifestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest <file>",
		Short: "Print the embedded MANIFEST XML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStream(args[0])
			if err != nil {
				return err
			}
			defer s.Close()
			r := s.ResourceByKind(wrc.KindManifest)
			if r == nil {
				return fmt.Errorf("no MANIFEST resource")
			}
			m, err := r.Manifest()
			if err != nil {
				return err
			}
			fmt.Println(m.XML)
			return nil
		},
	}
}
