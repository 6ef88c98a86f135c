package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hsiuhsiu/anoncreds-go/examples/common"
	"github.com/hsiuhsiu/anoncreds-go/pkg/anoncreds"
	"github.com/hsiuhsiu/anoncreds-go/pkg/anoncreds/capi"
	"github.com/hsiuhsiu/anoncreds-go/pkg/anoncreds/logging"
)

func main() {
	var attrs []string
	var (
		claimsPath = flag.String("claims", "", "path to a claim file ({\"attributes\": [...], \"values\": {...}})")
		showValues = flag.Bool("show-values", false, "print encoded attribute values instead of redacting them")
		boundary   = flag.Bool("boundary", false, "build through the handle-based C boundary instead of the Go API")
		verbose    = flag.Bool("v", false, "trace boundary calls as JSON on stderr")
	)
	flag.Func("attr", "attribute name (repeatable); used when -claims is not given", func(s string) error {
		attrs = append(attrs, s)
		return nil
	})
	flag.Parse()

	log.Printf("anoncreds-go version: %s (C ABI revision %s, exports built: %v)",
		anoncreds.WrapperVersion(), anoncreds.ABIRevision, capi.ExportsAvailable())

	if *verbose {
		capi.Configure(capi.Config{Logger: logging.New(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))})
	}

	cf := &common.ClaimFile{Attributes: attrs}
	if *claimsPath != "" {
		loaded, err := common.LoadClaims(*claimsPath)
		if err != nil {
			log.Fatalf("load claims: %v", err)
		}
		cf = loaded
	}
	if err := common.ValidateClaims(cf); err != nil {
		log.Fatalf("claims: %v (pass -claims or at least one -attr)", err)
	}

	run := runGo
	if *boundary {
		run = runBoundary
	}
	if err := run(cf, *showValues); err != nil {
		exitFor(err)
	}
}

// runGo builds the claims with the Go API. Products are released before it
// returns, so exitFor never skips zeroizing the values.
func runGo(cf *common.ClaimFile, showValues bool) error {
	set, values, err := cf.Build()
	if err != nil {
		return err
	}
	defer set.Release()
	if values != nil {
		defer values.Release()
	}

	digest, err := set.Digest()
	if err != nil {
		return fmt.Errorf("digest: %w", err)
	}
	fmt.Println(set)
	fmt.Printf("digest: %s\n", hex.EncodeToString(digest[:]))

	if values == nil {
		return nil
	}
	for name, v := range values.All() {
		shown := logging.Placeholder()
		if showValues {
			shown = v.String()
		}
		fmt.Printf("  %s = %s\n", name, shown)
	}
	return nil
}

// runBoundary drives the same claims through capi handles and checks that
// every handle it was given has been consumed or freed.
func runBoundary(cf *common.ClaimFile, showValues bool) error {
	before := capi.LiveHandles()
	if err := printHandles(cf, showValues); err != nil {
		return err
	}
	if leaked := capi.LiveHandles() - before; leaked != 0 {
		return fmt.Errorf("%d handles leaked", leaked)
	}
	return nil
}

func printHandles(cf *common.ClaimFile, showValues bool) error {
	set, values, err := cf.BuildHandles()
	if err != nil {
		return err
	}
	defer capi.AttributeSetFree(set)
	if values != 0 {
		defer capi.AttributeValueMapFree(values)
	}

	var js string
	if code := capi.AttributeSetToJSON(set, &js); code != capi.Success {
		return fmt.Errorf("attributes to JSON: %w", code.Err())
	}
	fmt.Println(js)

	if values == 0 {
		return nil
	}
	if !showValues {
		fmt.Printf("values: %s\n", logging.Placeholder())
		return nil
	}
	if code := capi.AttributeValueMapToJSON(values, &js); code != capi.Success {
		return fmt.Errorf("values to JSON: %w", code.Err())
	}
	fmt.Println(js)
	return nil
}

func exitFor(err error) {
	switch {
	case anoncreds.IsInputError(err), errors.Is(err, anoncreds.ErrAttributeMismatch):
		log.Printf("invalid claims: %v", err)
		os.Exit(2)
	default:
		log.Fatalf("anoncreds-go: %v", err)
	}
}
