// Command schema-proofs salts records, computes their Merkle roots and
// creates and verifies selective-disclosure proofs from the command line.
// Records travel between invocations as JSON with their salts embedded, so
// `salt` output feeds `root` and `proof` unchanged.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/centrifuge/schema-proofs/converter"
	"github.com/centrifuge/schema-proofs/proofs"
	"github.com/centrifuge/schema-proofs/records"
	"github.com/centrifuge/schema-proofs/schema"
	"github.com/centrifuge/schema-proofs/tools"
)

var logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("command failed", "err", err.Error())
		os.Exit(1)
	}
}

type options struct {
	schemaFiles []string
	recordFile  string
	outFile     string
	pathLiteral string
	className   string
	rootHex     string
	proofFile   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "schema-proofs",
		Short:         "Salted Merkle commitments and field-level disclosure proofs for typed records",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVar(&opts.schemaFiles, "schema", nil, "schema descriptor file (repeatable)")
	root.AddCommand(newSaltCmd(opts), newTreeRootCmd(opts), newProofCmd(opts), newVerifyCmd(opts))
	return root
}

func newSaltCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salt",
		Short: "Generate salts for every primitive field of a record",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, engine, err := load(opts)
			if err != nil {
				return err
			}
			rec, err := readRecord(registry, opts.recordFile)
			if err != nil {
				return err
			}
			if err := engine.Salt(rec); err != nil {
				return err
			}
			data, err := records.Marshal(registry, rec)
			if err != nil {
				return err
			}
			logger.Info("record salted", "class", rec.Class())
			return write(opts.outFile, append(data, '\n'))
		},
	}
	cmd.Flags().StringVar(&opts.recordFile, "record", "", "record JSON file")
	cmd.Flags().StringVarP(&opts.outFile, "out", "o", "", "output file (default stdout)")
	cmd.MarkFlagRequired("record")
	return cmd
}

func newTreeRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "root",
		Short: "Compute the Merkle root of a salted record",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, engine, err := load(opts)
			if err != nil {
				return err
			}
			rec, err := readRecord(registry, opts.recordFile)
			if err != nil {
				return err
			}
			rootHex, err := engine.Root(rec)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rootHex)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.recordFile, "record", "", "record JSON file")
	cmd.MarkFlagRequired("record")
	return cmd
}

func newProofCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proof",
		Short: "Create a disclosure proof for one field of a salted record",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, engine, err := load(opts)
			if err != nil {
				return err
			}
			rec, err := readRecord(registry, opts.recordFile)
			if err != nil {
				return err
			}
			path, err := converter.ParsePath(opts.pathLiteral)
			if err != nil {
				return err
			}
			proof, err := engine.Proof(rec, path)
			if err != nil {
				return err
			}
			data, err := tools.EncodeProof(proof)
			if err != nil {
				return err
			}
			logger.Info("proof created", "class", rec.Class(), "path", opts.pathLiteral)
			return write(opts.outFile, append(data, '\n'))
		},
	}
	cmd.Flags().StringVar(&opts.recordFile, "record", "", "record JSON file")
	cmd.Flags().StringVar(&opts.pathLiteral, "path", "", "dotted path of the field to disclose")
	cmd.Flags().StringVarP(&opts.outFile, "out", "o", "", "output file (default stdout)")
	cmd.MarkFlagRequired("record")
	cmd.MarkFlagRequired("path")
	return cmd
}

func newVerifyCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a disclosure proof against a root",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, engine, err := load(opts)
			if err != nil {
				return err
			}
			path, err := converter.ParsePath(opts.pathLiteral)
			if err != nil {
				return err
			}
			rootHex, err := tools.DecodeRoot(opts.rootHex)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(opts.proofFile)
			if err != nil {
				return err
			}
			proof, err := tools.DecodeProof(data)
			if err != nil {
				return err
			}
			valid, err := engine.Verify(opts.className, path, rootHex, proof)
			if err != nil {
				return err
			}
			if !valid {
				logger.Error("proof is invalid", "class", opts.className, "path", opts.pathLiteral)
				os.Exit(1)
			}
			logger.Info("proof is valid", "class", opts.className, "path", opts.pathLiteral)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.className, "class", "", "fully-qualified class name")
	cmd.Flags().StringVar(&opts.pathLiteral, "path", "", "dotted path of the disclosed field")
	cmd.Flags().StringVar(&opts.rootHex, "root", "", "expected root (hex)")
	cmd.Flags().StringVar(&opts.proofFile, "proof", "", "proof JSON file")
	cmd.MarkFlagRequired("class")
	cmd.MarkFlagRequired("path")
	cmd.MarkFlagRequired("root")
	cmd.MarkFlagRequired("proof")
	return cmd
}

func load(opts *options) (*schema.Registry, *proofs.Engine, error) {
	if len(opts.schemaFiles) == 0 {
		return nil, nil, fmt.Errorf("at least one --schema descriptor is required")
	}
	registry := schema.NewRegistry()
	for _, file := range opts.schemaFiles {
		if err := registry.LoadDescriptorFile(file); err != nil {
			return nil, nil, err
		}
	}
	if err := registry.Validate(); err != nil {
		return nil, nil, err
	}
	engine, err := proofs.New(registry)
	if err != nil {
		return nil, nil, err
	}
	return registry, engine, nil
}

func readRecord(registry *schema.Registry, path string) (*records.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return records.Unmarshal(registry, data)
}

func write(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
