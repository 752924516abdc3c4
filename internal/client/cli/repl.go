package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Filter(ctx context.Context, status string) error
	Sort(ctx context.Context, column string) error
	Open(ctx context.Context, ref string) error
	Notes(ctx context.Context) error
	Decide(ctx context.Context, status assessment.Status) error
	Close(ctx context.Context) error
	Download(ctx context.Context, name string) error
	Submit(ctx context.Context) error
}

const helpText = `Available commands:
  (l)ist                 show the assessments table
  refresh                reload assessments from the server
  search [text]          filter by vendor or service name (empty clears)
  filter <status>        all, pending, approved, rejected, needs_info
  sort <column>          submittedAt, vendorName, serviceName, deploymentType, status, lastUpdated
  open <row|id>          show one assessment
  notes                  edit review notes of the open assessment
  info | reject | approve  record a decision for the open assessment
  close                  close the open assessment
  download <name>        save an attached document
  submit                 submit a new vendor assessment
  exit | quit            leave the program`

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("vr %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "search":
			_ = a.Search(ctx, rest)

		case "filter":
			_ = a.Filter(ctx, rest)

		case "sort":
			_ = a.Sort(ctx, rest)

		case "open":
			_ = a.Open(ctx, rest)

		case "notes":
			_ = a.Notes(ctx)

		case "info":
			_ = a.Decide(ctx, assessment.StatusNeedsInfo)

		case "reject":
			_ = a.Decide(ctx, assessment.StatusRejected)

		case "approve":
			_ = a.Decide(ctx, assessment.StatusApproved)

		case "close":
			_ = a.Close(ctx)

		case "download":
			_ = a.Download(ctx, rest)

		case "submit":
			_ = a.Submit(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
