package app

import (
	"context"
	"time"

	"go.trai.ch/mazerepair/internal/adapters/logger" //nolint:depguard // Wired in app layer
)

const (
	// CheckName is the display name of the startup verification check.
	CheckName = "Should Load Application Context Without Failing"
	// CheckProfile is the profile the check starts the application with.
	CheckProfile = "local"
)

// Report is the outcome of one startup verification.
type Report struct {
	Name     string
	Passed   bool
	Err      error
	Duration time.Duration
	// HTTPAddr is the ephemeral address the HTTP listener was bound to.
	HTTPAddr string
}

// Cause renders the failure with its causes and their metadata, one per line.
// It is empty for a passed check.
func (r Report) Cause() string {
	if r.Err == nil {
		return ""
	}
	return logger.FormatError(r.Err)
}

// started is the part of a running context the check needs.
type started interface {
	HTTPAddr() string
	Close(ctx context.Context) error
}

type loadFunc func(ctx context.Context, opts ...Option) (started, error)

// Verify starts the full application context under the local profile with
// every listener on an ephemeral port, then releases it again. Options may
// replace the profiles or add configuration; the ports are always ephemeral.
// A context that starts but fails to release fails the check.
func Verify(ctx context.Context, opts ...Option) Report {
	return verify(ctx, func(ctx context.Context, opts ...Option) (started, error) {
		c, err := Load(ctx, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	}, opts...)
}

func verify(ctx context.Context, load loadFunc, opts ...Option) Report {
	begin := time.Now()
	report := Report{Name: CheckName}

	all := make([]Option, 0, len(opts)+2)
	all = append(all, WithProfiles(CheckProfile))
	all = append(all, opts...)
	all = append(all, WithRandomPort())

	c, err := load(ctx, all...)
	if err == nil {
		report.HTTPAddr = c.HTTPAddr()
		err = c.Close(ctx)
	}

	report.Err = err
	report.Passed = err == nil
	report.Duration = time.Since(begin)
	return report
}
