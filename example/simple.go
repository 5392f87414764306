// Command example demonstrates salting a record, committing to its root and
// disclosing a single field.
package main

import (
	"fmt"
	"os"

	"github.com/centrifuge/schema-proofs/converter"
	"github.com/centrifuge/schema-proofs/examples/documents"
	"github.com/centrifuge/schema-proofs/proofs"
	"github.com/centrifuge/schema-proofs/tools"
)

func main() {
	registry := documents.NewRegistry()
	engine, err := proofs.New(registry)
	if err != nil {
		fail(err)
	}

	invoice := documents.NewInvoice()
	if err := engine.Salt(invoice); err != nil {
		fail(err)
	}

	root, err := engine.Root(invoice)
	if err != nil {
		fail(err)
	}
	fmt.Printf("root: %s\n", root)

	path := []string{"customer", "name"}
	proof, err := engine.Proof(invoice, path)
	if err != nil {
		fail(err)
	}
	encoded, err := tools.EncodeProof(proof)
	if err != nil {
		fail(err)
	}
	fmt.Printf("proof for %s:\n%s\n", converter.FormatPath(path), encoded)

	valid, err := engine.Verify("org.example.Invoice", path, root, proof)
	if err != nil {
		fail(err)
	}
	fmt.Printf("valid: %t\n", valid)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
