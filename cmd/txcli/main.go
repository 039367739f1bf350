// Command txcli is a small diagnostic tool over the canonical
// transaction codec: decode, identity and validity-check a
// hex-encoded transaction from the command line.
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.chainvm.dev/core/pkg/params"
	"go.chainvm.dev/core/pkg/txcheck"
	"go.chainvm.dev/core/pkg/txtypes"
)

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "decode":
		runDecode(os.Args[2:])
	case "id":
		runID(os.Args[2:])
	case "check":
		runCheck(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: txcli <decode|id|check> [flags] <hex-encoded-tx>")
}

// envelope is the non-normative JSON diagnostic shape every subcommand
// prints; it is never the canonical wire form.
type envelope struct {
	OK    bool        `json:"ok"`
	Error string      `json:"error,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

func printEnvelope(e envelope) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		log.Fatalf("txcli: encode output: %v", err)
	}
	if !e.OK {
		os.Exit(1)
	}
}

func decodeHexArg(fs *flag.FlagSet) txtypes.Tx {
	if fs.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	raw, err := hex.DecodeString(fs.Arg(0))
	if err != nil {
		printEnvelope(envelope{Error: fmt.Sprintf("invalid hex: %v", err)})
		os.Exit(1)
	}
	tx, err := txtypes.Decode(raw)
	if err != nil {
		printEnvelope(envelope{Error: fmt.Sprintf("decode: %v", err)})
		os.Exit(1)
	}
	return tx
}

type decodeSummary struct {
	Kind         string `json:"kind"`
	Inputs       int    `json:"inputs"`
	Outputs      int    `json:"outputs"`
	Witnesses    int    `json:"witnesses"`
	SizeStatic   int    `json:"size_static"`
	SizeDynamic  int    `json:"size_dynamic"`
	MeteredBytes int    `json:"metered_bytes"`
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	fs.Parse(args)
	tx := decodeHexArg(fs)

	summary := decodeSummary{
		Kind:         kindName(tx),
		SizeStatic:   txtypes.SizeStatic(tx),
		SizeDynamic:  txtypes.SizeDynamic(tx),
		MeteredBytes: txtypes.MeteredBytesSize(tx),
	}
	if hi, ok := tx.(txtypes.HasInputs); ok {
		summary.Inputs = len(hi.Inputs())
	}
	if ho, ok := tx.(txtypes.HasOutputs); ok {
		summary.Outputs = len(ho.Outputs())
	}
	if hw, ok := tx.(txtypes.HasWitnesses); ok {
		summary.Witnesses = len(hw.Witnesses())
	}
	printEnvelope(envelope{OK: true, Data: summary})
}

func runID(args []string) {
	fs := flag.NewFlagSet("id", flag.ExitOnError)
	chainID := fs.Uint64("chain-id", 0, "chain id to bind the transaction id to")
	fs.Parse(args)
	tx := decodeHexArg(fs)

	id := txtypes.TxId(tx, *chainID)
	printEnvelope(envelope{OK: true, Data: map[string]string{"id": hex.EncodeToString(id[:])}})
}

func runCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	chainID := fs.Uint64("chain-id", 0, "chain id consensus parameters are bound to")
	blockHeight := fs.Uint64("block-height", 0, "block height to check maturity against")
	fs.Parse(args)
	tx := decodeHexArg(fs)

	cp := params.Standard().WithChainID(*chainID)
	checked, err := txcheck.Check(tx, txtypes.BlockHeight(*blockHeight), cp)
	if err != nil {
		printEnvelope(envelope{Error: err.Error()})
	}
	id := checked.Id
	printEnvelope(envelope{OK: true, Data: map[string]string{
		"id":            hex.EncodeToString(id[:]),
		"metered_bytes": fmt.Sprintf("%d", checked.MeteredBytes),
	}})
}

func kindName(tx txtypes.Tx) string {
	switch tx.(type) {
	case *txtypes.Script:
		return "script"
	case *txtypes.Create:
		return "create"
	case *txtypes.Mint:
		return "mint"
	default:
		return "unknown"
	}
}
