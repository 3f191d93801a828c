package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"example.com/pixgate/internal/common"
	"example.com/pixgate/internal/pix"
	"example.com/pixgate/internal/report"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	cmd := os.Args[1]
	switch cmd {
	case "generate":
		generateCmd(os.Args[2:])
	case "qr":
		qrCmd(os.Args[2:])
	case "receipt":
		receiptCmd(os.Args[2:])
	case "validate":
		validateCmd(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Printf(`pixctl %s (built %s) <command> [options]

Commands:
  generate  --key <pix key> [--key-type <cpf|cnpj|email|phone|random>] [--name <merchant>] [--city <city>] [--amount <value>] [--txid <reference>] [--json <charge.json>]
  qr        --key <pix key> [--amount <value>] [--size <pixels>] [--out qr.png]
  receipt   --key <pix key> --out <receipt.pdf> [--lang <en|pt>]
  validate  --code <payload> | --in <payload file>
`, version, buildDate)
}

// chargeArgs collects the flags shared by every payload-producing command.
type chargeArgs struct {
	key     *string
	keyType *string
	name    *string
	city    *string
	amount  *float64
	txid    *string
}

func registerChargeFlags(fs *flag.FlagSet) chargeArgs {
	return chargeArgs{
		key:     fs.String("key", "", "PIX key (phone, email, CPF/CNPJ or random key)"),
		keyType: fs.String("key-type", "", "declared key type hint"),
		name:    fs.String("name", "", "merchant display name"),
		city:    fs.String("city", "", "merchant city"),
		amount:  fs.Float64("amount", 0, "charge amount in BRL"),
		txid:    fs.String("txid", "", "transaction reference"),
	}
}

func buildCharge(args chargeArgs) pix.Charge {
	keyType, ok := pix.ParseKeyType(*args.keyType)
	if !ok {
		common.Fatalf("unknown key type %q", *args.keyType)
	}
	ch, err := pix.NewCharge(pix.Request{
		Key:           pix.Key{Type: keyType, Value: *args.key},
		Merchant:      pix.Merchant{Name: *args.name, City: *args.city},
		Amount:        *args.amount,
		TransactionID: *args.txid,
	})
	if err != nil {
		common.Fatalf("generate: %v", err)
	}
	if ch.Guessed() {
		common.Logf("key %s was completed from a partial phone number; confirm before charging", ch.Key)
	}
	return ch
}

func generateCmd(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	charge := registerChargeFlags(fs)
	jsonOut := fs.String("json", "", "also write the charge record to this file")
	fs.Parse(args)

	ch := buildCharge(charge)
	if *jsonOut != "" {
		if err := report.SaveChargeJSON(ch, *jsonOut); err != nil {
			common.Fatalf("write charge json: %v", err)
		}
	}
	fmt.Println(ch.Code)
}

func qrCmd(args []string) {
	fs := flag.NewFlagSet("qr", flag.ExitOnError)
	charge := registerChargeFlags(fs)
	size := fs.Int("size", report.DefaultQRSize, "image width in pixels")
	out := fs.String("out", "qr.png", "output PNG path")
	fs.Parse(args)

	ch := buildCharge(charge)
	png, err := report.PayloadToQR(ch.Code, *size)
	if err != nil {
		common.Fatalf("render qr: %v", err)
	}
	if err := os.WriteFile(*out, png, 0644); err != nil {
		common.Fatalf("write qr: %v", err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", *out, len(png))
}

func receiptCmd(args []string) {
	fs := flag.NewFlagSet("receipt", flag.ExitOnError)
	charge := registerChargeFlags(fs)
	out := fs.String("out", "receipt.pdf", "output PDF path")
	langFlag := fs.String("lang", "pt", "receipt language (en|pt)")
	fs.Parse(args)

	lang, err := report.ParseLanguage(*langFlag)
	if err != nil {
		common.Fatalf("%v", err)
	}
	ch := buildCharge(charge)
	if err := report.SaveChargePDF(ch, lang, *out); err != nil {
		common.Fatalf("write receipt: %v", err)
	}
	fmt.Printf("wrote %s\n", *out)
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	code := fs.String("code", "", "BR Code payload string")
	in := fs.String("in", "", "file containing the payload")
	fs.Parse(args)

	payload := *code
	if payload == "" && *in != "" {
		b, err := os.ReadFile(*in)
		if err != nil {
			common.Fatalf("read payload: %v", err)
		}
		payload = strings.TrimSpace(string(b))
	}
	if payload == "" {
		fmt.Println("required: --code or --in")
		os.Exit(1)
	}

	fields, err := pix.ParsePayload(payload)
	if err != nil {
		common.Fatalf("parse: %v", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLEN\tVALUE")
	for _, f := range fields {
		fmt.Fprintf(w, "%s\t%02d\t%s\n", f.ID, len(f.Value), f.Value)
	}
	w.Flush()

	if err := pix.VerifyPayload(payload); err != nil {
		common.Fatalf("invalid: %v", err)
	}
	fmt.Println("payload OK")
}
