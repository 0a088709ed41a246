// Package merge rewrites the host config into a single include of the
// generated files plus whatever top-level nodes nirify does not manage.
package merge

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"time"

	"github.com/charmbracelet/log"

	"github.com/FrozenTear/Nirify-sub003/internal/backup"
	"github.com/FrozenTear/Nirify-sub003/internal/constants"
	"github.com/FrozenTear/Nirify-sub003/internal/importer"
	"github.com/FrozenTear/Nirify-sub003/internal/kdl"
	"github.com/FrozenTear/Nirify-sub003/internal/logger"
	"github.com/FrozenTear/Nirify-sub003/internal/storage"
)

// ErrNotGenerated is returned when main.kdl does not exist yet. Dropping
// managed nodes then would lose their values.
var ErrNotGenerated = errors.New("generated files are missing, run init first")

// MergeError is a merge that could not proceed safely. BackupPath is set
// when the original was already copied away.
type MergeError struct {
	Stage      string
	Path       string
	BackupPath string
	Err        error
}

func (e *MergeError) Error() string {
	msg := fmt.Sprintf("merge %s failed for %s: %v", e.Stage, e.Path, e.Err)
	if e.BackupPath != "" {
		msg += " (original saved to " + e.BackupPath + ")"
	}
	return msg
}

func (e *MergeError) Unwrap() error { return e.Err }

type Options struct {
	// Backups receives the original file. Nil uses a manager in the
	// default backup directory.
	Backups *backup.Manager
	DryRun  bool
	// Now is the clock of the default backup manager
	Now func() time.Time
	Log *log.Logger
}

// Result reports one merge. PreservedCount does not count an include of
// the generated files that was already present.
type Result struct {
	ReplacedCount  int      `json:"replaced_count"`
	PreservedCount int      `json:"preserved_count"`
	IncludeAdded   bool     `json:"include_added"`
	BackupPath     string   `json:"backup_path"`
	Warnings       []string `json:"warnings,omitempty"`
	DryRun         bool     `json:"dry_run"`
	Output         string   `json:"-"`
}

// PlanResult is the outcome of classifying a host document. Every
// top-level node name appears exactly once in DroppedNames or
// PreservedNames, in source order.
type PlanResult struct {
	Output         string
	DroppedNames   []string
	PreservedNames []string
	Replaced       int
	Preserved      int
	HasInclude     bool
}

// NoOp reports whether the document already has the include and nothing
// to drop.
func (p PlanResult) NoOp() bool {
	return p.HasInclude && len(p.DroppedNames) == 0
}

var extraBlankLines = regexp.MustCompile(`\n{3,}`)

// Plan computes the merged text for host config source without touching
// the filesystem. target is the include path of the generated main file.
func Plan(src []byte, target string) (PlanResult, error) {
	doc, err := kdl.Parse(src)
	if err != nil {
		return PlanResult{}, err
	}

	var res PlanResult
	var out bytes.Buffer
	// BOM is not carried over
	last := 0
	if bytes.HasPrefix(src, []byte("\xef\xbb\xbf")) {
		last = 3
	}
	own := func(n *kdl.Node) bool { return ownInclude(n, target) }
	for _, n := range doc.Nodes {
		switch {
		case own(n) && !res.HasInclude:
			res.HasInclude = true
			res.PreservedNames = append(res.PreservedNames, n.Name)
			continue
		case own(n):
			// duplicate include of the generated files
		case importer.IsManaged(n):
			res.Replaced++
		default:
			res.Preserved++
			res.PreservedNames = append(res.PreservedNames, n.Name)
			continue
		}
		res.DroppedNames = append(res.DroppedNames, n.Name)
		out.Write(bytes.TrimRight(src[last:n.SpanStart], " \t"))
		last = n.SpanEnd
		for last < len(src) && (src[last] == ' ' || src[last] == '\t') {
			last++
		}
	}
	out.Write(src[last:])

	body := extraBlankLines.ReplaceAll(out.Bytes(), []byte("\n\n"))
	body = bytes.TrimLeft(body, "\n")
	if len(bytes.TrimSpace(body)) == 0 {
		body = nil
	}
	if len(body) > 0 && body[len(body)-1] != '\n' {
		body = append(body, '\n')
	}

	if res.HasInclude {
		res.Output = string(body)
		return res, nil
	}
	res.Output = includeLine(target) + "\n"
	if len(body) > 0 {
		res.Output += "\n" + string(body)
	}
	return res, nil
}

func includeLine(target string) string {
	return kdl.FormatInline(kdl.NewNode("include", kdl.String(target)))
}

func ownInclude(n *kdl.Node, target string) bool {
	if n.Name != "include" {
		return false
	}
	v, ok := n.Arg(0)
	return ok && (v.Str == target || importer.IsOwnInclude(v.Str))
}

// SmartReplace merges the host config at paths.HostConfig. The original is
// backed up before it is changed; a missing file is created and an
// unparsable one is backed up and replaced by the bare include. Dropping
// managed nodes requires the generated files to exist.
func SmartReplace(paths storage.Paths, opts Options) (Result, error) {
	l := logger.OrDefault(opts.Log)
	host := paths.HostConfig
	target := paths.IncludeTarget()
	minimal := includeLine(target) + "\n"
	res := Result{DryRun: opts.DryRun}

	src, err := os.ReadFile(host)
	if errors.Is(err, fs.ErrNotExist) {
		res.IncludeAdded = true
		res.Output = minimal
		if opts.DryRun {
			return res, nil
		}
		if err := storage.AtomicWriteFile(host, []byte(minimal), constants.FilePerm); err != nil {
			return res, &MergeError{Stage: "write", Path: host, Err: err}
		}
		l.Info("created host config", "path", host)
		return res, nil
	}
	if err != nil {
		return res, &MergeError{Stage: "read", Path: host, Err: err}
	}

	plan, err := Plan(src, target)
	if err != nil {
		res.IncludeAdded = true
		res.Output = minimal
		res.Warnings = append(res.Warnings, fmt.Sprintf("host config could not be parsed and was replaced, original kept in a backup: %v", err))
		if opts.DryRun {
			return res, nil
		}
		return replace(paths, opts, l, src, []byte(minimal), backup.ReasonCorrupt, res)
	}

	res.ReplacedCount = plan.Replaced
	res.PreservedCount = plan.Preserved
	res.Output = plan.Output
	if plan.NoOp() {
		res.Output = string(src)
		return res, nil
	}
	res.IncludeAdded = !plan.HasInclude
	if opts.DryRun {
		return res, nil
	}
	// managed nodes may only be dropped once their values live in the
	// generated files
	if plan.Replaced > 0 {
		if _, err := os.Stat(paths.MainFile()); err != nil {
			return res, &MergeError{Stage: "precheck", Path: host, Err: ErrNotGenerated}
		}
	}
	return replace(paths, opts, l, src, []byte(plan.Output), backup.ReasonMerge, res)
}

// replace backs up original, writes next and checks the written file
func replace(paths storage.Paths, opts Options, l *log.Logger, original, next []byte, reason backup.Reason, res Result) (Result, error) {
	host := paths.HostConfig
	mgr := opts.Backups
	if mgr == nil {
		var bopts []backup.Option
		if opts.Now != nil {
			bopts = append(bopts, backup.WithClock(opts.Now))
		}
		mgr = backup.NewManager(paths.BackupDir(), constants.DefaultMaxBackups, l, bopts...)
	}

	path, err := mgr.BackupData(host, original, reason)
	if err != nil {
		return res, &MergeError{Stage: "backup", Path: host, Err: err}
	}
	res.BackupPath = path

	if err := storage.AtomicWriteFile(host, next, constants.FilePerm); err != nil {
		return res, &MergeError{Stage: "write", Path: host, BackupPath: path, Err: err}
	}
	if err := verify(host, paths.IncludeTarget()); err != nil {
		return res, &MergeError{Stage: "verify", Path: host, BackupPath: path, Err: err}
	}
	l.Info("merged host config", "path", host, "replaced", res.ReplacedCount, "preserved", res.PreservedCount, "backup", path)
	return res, nil
}

// verify re-reads the written file: it must parse, include the generated
// files once and hold no managed node.
func verify(host, target string) error {
	doc, err := kdl.ParseFile(host)
	if err != nil {
		return err
	}
	includes := 0
	for _, n := range doc.Nodes {
		if ownInclude(n, target) {
			includes++
		}
		if importer.IsManaged(n) {
			return fmt.Errorf("managed node %q still present", n.Name)
		}
	}
	if includes != 1 {
		return fmt.Errorf("expected one include of the generated files, found %d", includes)
	}
	return nil
}
