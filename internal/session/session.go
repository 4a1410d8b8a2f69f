package session

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-logr/logr"

	"docmapper/internal/convert"
	"docmapper/internal/diagnostic"
	"docmapper/internal/document"
	"docmapper/internal/field"
	"docmapper/internal/fieldpath"
	"docmapper/internal/fieldtype"
	"docmapper/internal/mapping"
	"docmapper/internal/namespace"
)

// Record codes.
const (
	CodeInvalidPath    = "invalid_path"
	CodeNotFound       = "not_found"
	CodeDefaultApplied = "default_applied"
	CodeUnsupported    = "unsupported"
	CodeReadFailed     = "read_failed"
	CodeConversion     = "conversion_failed"
	CodeWriteFailed    = "write_failed"
)

// Session runs one mapping definition. It may process any number of
// document pairs, one at a time.
type Session struct {
	fields []mapping.FieldMapping
	source mapping.DocumentSpec
	target mapping.DocumentSpec
	config Config
	log    logr.Logger
	hook   field.ConversionHook
	sink   diagnostic.Sink
	paths  *fieldpath.Cache
}

// New creates a session for mf. The definition is normalized on a copy, so
// mf itself is left as is.
func New(mf *mapping.File, cfg Config, opts ...Option) *Session {
	cp := *mf
	cp.Fields = append([]mapping.FieldMapping(nil), mf.Fields...)
	mapping.Normalize(&cp)

	s := &Session{
		fields: cp.Fields,
		source: cp.Source,
		target: cp.Target,
		config: cfg,
		log:    logr.Discard(),
		sink:   diagnostic.Discard,
		paths:  fieldpath.NewCache(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.hook == nil {
		s.hook = convert.New(cfg.Categories)
	}

	return s
}

// Process moves every mapped field from src into dst.
//
// Nil registries are built from the mapping definition. The source registry
// also learns the declarations of the source root for aliases the
// definition does not bind.
//
// The returned diagnostics hold every record of the run. The error is only
// set when StopOnError aborted the run.
func (s *Session) Process(src document.Adapter, srcNS *namespace.Registry, dst document.Adapter, dstNS *namespace.Registry) (*diagnostic.Diagnostics, error) {
	if srcNS == nil {
		srcNS = NewRegistry(s.source)
	}

	if dstNS == nil {
		dstNS = NewRegistry(s.target)
	}

	if root := src.Root(); root != nil {
		for _, b := range src.Declarations(root) {
			if _, ok := srcNS.Resolve(b.Alias); !ok {
				srcNS.Seed([]namespace.Binding{b})
			}
		}
	}

	r := &run{
		Session: s,
		src:     src,
		srcNS:   srcNS,
		reader:  field.NewReader(s.hook),
		writer:  field.NewWriter(dst, dstNS, s.hook, field.WriterConfig{StrictNamespaces: s.config.StrictNamespaces}),
		diags:   &diagnostic.Diagnostics{},
	}

	for i := range s.fields {
		where := fmt.Sprintf("fields[%d]", i)

		err := r.mapField(where, &s.fields[i])
		if err != nil && s.config.StopOnError {
			s.log.Info("Stopping at first failed field mapping", "mapping", where)
			return r.diags, err
		}
	}

	s.log.Info("Mapping complete",
		"fields", len(s.fields), "written", r.written,
		"errors", len(r.diags.Errors), "warnings", len(r.diags.Warnings))

	return r.diags, nil
}

// run is the state of one Process call.
type run struct {
	*Session

	src     document.Adapter
	srcNS   *namespace.Registry
	reader  *field.Reader
	writer  *field.Writer
	diags   *diagnostic.Diagnostics
	written int
}

// mapField runs one field mapping and returns its first error.
func (r *run) mapField(where string, fm *mapping.FieldMapping) error {
	targets := make([]fieldpath.Path, 0, len(fm.Target))

	for _, raw := range fm.Target {
		p, err := r.paths.Parse(raw)
		if err != nil {
			return r.fail(CodeInvalidPath, where, raw, err)
		}

		targets = append(targets, p)
	}

	if fm.Source == "" {
		return r.writeDefault(where, fm, targets)
	}

	source, err := r.paths.Parse(fm.Source)
	if err != nil {
		return r.fail(CodeInvalidPath, where, fm.Source, err)
	}

	res, err := r.reader.Read(source, fm.SourceType, r.src, r.srcNS)
	firstErr := r.readErrors(where, fm.Source, err)

	members := res.Fields()
	if len(members) == 0 {
		if fm.HasDefault() && !anyWildcard(targets) {
			return errors.Join(firstErr, r.writeDefault(where, fm, targets))
		}

		r.record(diagnostic.SeverityInfo, CodeNotFound, where, source.String(), "no value at source path")

		return firstErr
	}

	for _, member := range members {
		switch member.Status {
		case field.StatusFailed:
			continue
		case field.StatusUnsupported:
			r.record(diagnostic.SeverityWarning, CodeUnsupported, where, member.Path.String(),
				"path cannot be represented in the source format")

			continue
		case field.StatusNotFound:
			if fm.HasDefault() && !source.HasWildcard() {
				if err := r.writeDefault(where, fm, targets); err != nil && firstErr == nil {
					firstErr = err
				}

				continue
			}

			r.record(diagnostic.SeverityInfo, CodeNotFound, where, member.Path.String(), "no value at source path")

			continue
		}

		if err := r.writeMember(where, fm, source, member, targets); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// readErrors records read failures and returns the first of them.
func (r *run) readErrors(where, source string, err error) error {
	if err == nil {
		return nil
	}

	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}

	for _, e := range errs {
		var convErr *field.ConversionError
		if errors.As(e, &convErr) {
			r.fail(CodeConversion, where, convErr.Path, e)
			continue
		}

		r.fail(CodeReadFailed, where, source, e)
	}

	return errs[0]
}

func (r *run) writeMember(where string, fm *mapping.FieldMapping, source fieldpath.Path, member field.Field, targets []fieldpath.Path) error {
	value, err := r.hook.Convert(member.Value, fm.SourceType, fm.TargetType)
	if err != nil {
		return r.fail(CodeConversion, where, member.Path.String(), err)
	}

	var firstErr error

	for _, target := range targets {
		concrete, err := bindTarget(target, source, member.Path)
		if err == nil {
			err = r.write(concrete, fm.TargetType, value, member.Path.String())
		}

		if err != nil {
			err = r.fail(CodeWriteFailed, where, target.String(), err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

func (r *run) writeDefault(where string, fm *mapping.FieldMapping, targets []fieldpath.Path) error {
	if !fm.HasDefault() {
		return nil
	}

	value, err := r.hook.Convert(*fm.Default, fieldtype.TypeString, fm.TargetType)
	if err != nil {
		return r.fail(CodeConversion, where, *fm.Default, err)
	}

	var firstErr error

	for _, target := range targets {
		if err := r.write(target, fm.TargetType, value, "default"); err != nil {
			err = r.fail(CodeWriteFailed, where, target.String(), err)
			if firstErr == nil {
				firstErr = err
			}

			continue
		}

		r.record(diagnostic.SeverityInfo, CodeDefaultApplied, where, target.String(), "default value written")
	}

	return firstErr
}

func (r *run) write(target fieldpath.Path, typ fieldtype.Type, value any, from string) error {
	if err := r.writer.Write(target, field.Field{Path: target, Type: typ, Value: value}); err != nil {
		return err
	}

	r.written++
	r.log.V(1).Info("Field written", "from", from, "to", target.String())

	return nil
}

// fail records err and returns it.
func (r *run) fail(code, where, path string, err error) error {
	r.log.Error(err, "Field mapping failed", "mapping", where, "path", path)
	r.record(diagnostic.SeverityError, code, where, path, err.Error())

	return err
}

func (r *run) record(severity diagnostic.Severity, code, where, path, message string) {
	r.diags.Add(diagnostic.Diagnostic{Severity: severity, Code: code, Message: message, Mapping: where, FieldPath: path})
	r.sink.Record(severity, path, message)
}

func anyWildcard(paths []fieldpath.Path) bool {
	for _, p := range paths {
		if p.HasWildcard() {
			return true
		}
	}

	return false
}

// bindTarget fills the wildcards of target from member, the concrete form
// of source. Wildcards pair up by position: the first target wildcard takes
// the index or key of the first source wildcard, and so on.
func bindTarget(target, source, member fieldpath.Path) (fieldpath.Path, error) {
	tw := target.Wildcards()
	if len(tw) == 0 {
		return target, nil
	}

	sw := source.Wildcards()
	if len(tw) > len(sw) {
		return target, fmt.Errorf("%s has %d wildcards, source %s only %d", target, len(tw), source, len(sw))
	}

	for k, depth := range tw {
		seg := member.Segment(sw[k])

		key, isKey := seg.Key()
		if !isKey {
			i, _ := seg.Index()
			target = target.WithIndex(depth, i)

			continue
		}

		if target.Segment(depth).Collection() == fieldpath.CollectionMap {
			target = target.WithKey(depth, key)
			continue
		}

		i, err := strconv.Atoi(key)
		if err != nil || i < 0 {
			return target, fmt.Errorf("map key %q cannot index %s", key, target.Segment(depth))
		}

		target = target.WithIndex(depth, i)
	}

	return target, nil
}
