package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/client/client"
	"github.com/dmitrijs2005/vendorrisk/internal/client/ui"
	"github.com/dmitrijs2005/vendorrisk/internal/common"
	"github.com/dmitrijs2005/vendorrisk/internal/filex"
	"github.com/dmitrijs2005/vendorrisk/internal/netx"
)

var errNoneOpen = errors.New("no assessment is open, use 'open <row|id>' first")

// report prints err in user terms and logs it.
func (a *App) report(ctx context.Context, err error) {
	var verr *assessment.ValidationError

	switch {
	case errors.As(err, &verr):
		fmt.Fprintln(a.out, "Please correct the following fields:")
		keys := make([]string, 0, len(verr.Fields))
		for k := range verr.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(a.out, "  %s: %s\n", k, verr.Fields[k])
		}
		return
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	case errors.Is(err, common.ErrorDocumentStoreDisabled):
		fmt.Fprintln(a.out, "Documents are not available: the document store is not configured")
	default:
		fmt.Fprintln(a.out, "Error:", err.Error())
	}
	a.logger.Warn(ctx, "command failed", "error", err.Error())
}

func (a *App) List(ctx context.Context) error {
	return ui.RenderTable(a.out, a.dashboard.Rows(), a.dashboard.SortState(), a.color)
}

// Refresh reloads every record. An open assessment stays open with its
// notes draft when it still exists.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.dashboard.Load(ctx); err != nil {
		a.report(ctx, err)
		return err
	}

	if a.modal != nil {
		id, notes := a.modal.Assessment().ID, a.modal.Notes()
		m, err := a.dashboard.OpenByID(id)
		if err != nil {
			a.modal = nil
		} else {
			m.SetNotes(notes)
			a.modal = m
		}
	}

	return a.List(ctx)
}

func (a *App) Search(ctx context.Context, term string) error {
	a.dashboard.SetSearch(term)
	return a.List(ctx)
}

func (a *App) Filter(ctx context.Context, status string) error {
	if err := a.dashboard.SetStatusFilter(status); err != nil {
		fmt.Fprintf(a.out, "Unknown status %q. Use one of: all, pending, approved, rejected, needs_info\n", status)
		return err
	}
	return a.List(ctx)
}

func (a *App) Sort(ctx context.Context, column string) error {
	col, err := assessment.ParseColumn(column)
	if err != nil {
		names := make([]string, 0, len(assessment.Columns()))
		for _, c := range assessment.Columns() {
			names = append(names, string(c))
		}
		fmt.Fprintf(a.out, "Unknown column %q. Use one of: %s\n", column, strings.Join(names, ", "))
		return err
	}

	s := a.dashboard.ToggleSort(col)
	if s.Active() {
		fmt.Fprintf(a.out, "Sorted by %s %s\n", s.Column, s.Direction)
	} else {
		fmt.Fprintln(a.out, "Sort cleared")
	}
	return a.List(ctx)
}

// Open accepts a row number of the current table or an assessment id.
func (a *App) Open(ctx context.Context, ref string) error {
	if ref == "" {
		fmt.Fprintln(a.out, "Usage: open <row|id>")
		return common.ErrorInvalidRequest
	}

	open := func() error {
		if n, err := strconv.Atoi(ref); err == nil {
			m, err := a.dashboard.Open(n - 1)
			if err == nil {
				a.modal = m
				return nil
			}
		}
		m, err := a.dashboard.OpenByID(ref)
		if err != nil {
			return err
		}
		a.modal = m
		return nil
	}

	if err := open(); err != nil {
		a.report(ctx, err)
		return err
	}

	return ui.RenderDetail(a.out, a.modal, a.color)
}

func (a *App) Notes(ctx context.Context) error {
	if a.modal == nil {
		fmt.Fprintln(a.out, errNoneOpen.Error())
		return errNoneOpen
	}

	prompt := "Review Notes"
	if cur := a.modal.Notes(); cur != "" {
		prompt += " (replacing: " + cur + ")"
	} else {
		prompt += " (Add your review notes here...)"
	}

	notes, err := GetMultiline(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	a.modal.SetNotes(notes)
	fmt.Fprintln(a.out, "Notes updated; they are saved with the next decision")
	return nil
}

// Decide records status with the current notes draft for the open
// assessment. On failure the assessment stays open.
func (a *App) Decide(ctx context.Context, status assessment.Status) error {
	if a.modal == nil {
		fmt.Fprintln(a.out, errNoneOpen.Error())
		return errNoneOpen
	}

	id := a.modal.Assessment().ID
	if err := a.modal.Act(ctx, status); err != nil {
		a.report(ctx, err)
		return err
	}
	a.modal = nil

	for _, r := range a.dashboard.Records() {
		if r.ID == id {
			fmt.Fprintf(a.out, "%s / %s is now %s\n", r.VendorName, r.ServiceName, ui.Badge(r.Status, a.color))
			break
		}
	}
	return nil
}

func (a *App) Close(ctx context.Context) error {
	if a.modal != nil {
		a.modal.Close()
		a.modal = nil
	}
	return nil
}

// Download saves one document of the open assessment into the download
// directory.
func (a *App) Download(ctx context.Context, name string) error {
	if a.modal == nil {
		fmt.Fprintln(a.out, errNoneOpen.Error())
		return errNoneOpen
	}
	rec := a.modal.Assessment()
	if !rec.Documents.Contains(name) {
		fmt.Fprintf(a.out, "No document %q on this assessment\n", name)
		return common.ErrorDocumentNotFound
	}

	err := func() error {
		url, err := a.backend.DocumentURL(ctx, rec.ID, name)
		if err != nil {
			return err
		}

		dir, err := filex.EnsureDir(a.config.DownloadDir)
		if err != nil {
			return err
		}
		path, err := filex.SafeJoin(dir, name)
		if err != nil {
			return err
		}

		f, err := os.Create(path)
		if err != nil {
			return err
		}
		n, err := netx.DownloadFromPresignedURL(ctx, url, f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
			return err
		}

		fmt.Fprintf(a.out, "Saved %s (%d bytes)\n", path, n)
		return nil
	}()
	if err != nil {
		a.report(ctx, err)
	}
	return err
}
