package observability

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/homerun-derby/internal/config"
	"github.com/riskibarqy/homerun-derby/internal/platform/logging"
)

// Stack holds the tracing, profiling and pprof hooks of one process.
type Stack struct {
	logger          *logging.Logger
	shutdownTracing func(context.Context) error
	stopProfiler    func() error
	pprof           *http.Server
}

// Start brings up every configured integration. Anything already started is
// torn down again when a later step fails.
func Start(cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Stack{
		logger:          logger,
		shutdownTracing: noopShutdown,
		stopProfiler:    func() error { return nil },
	}

	var err error
	if s.shutdownTracing, err = InitUptrace(cfg, logger.Named("uptrace")); err != nil {
		return nil, errors.Wrap(err, "init uptrace")
	}
	if s.stopProfiler, err = InitPyroscope(cfg, logger.Named("pyroscope")); err != nil {
		_ = s.shutdownTracing(context.Background())
		return nil, errors.Wrap(err, "init pyroscope")
	}
	if s.pprof, err = StartPprofServer(cfg, logger.Named("pprof")); err != nil {
		_ = s.stopProfiler()
		_ = s.shutdownTracing(context.Background())
		return nil, errors.Wrap(err, "start pprof")
	}
	return s, nil
}

// PprofAddr is the bound pprof address, or empty when pprof is off.
func (s *Stack) PprofAddr() string {
	if s == nil || s.pprof == nil {
		return ""
	}
	return s.pprof.Addr
}

// Shutdown stops pprof first and flushes traces last. Every step runs even
// when an earlier one fails.
func (s *Stack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}

	var err error
	if stopErr := StopPprofServer(ctx, s.pprof); stopErr != nil {
		err = errors.CombineErrors(err, errors.Wrap(stopErr, "stop pprof"))
	}
	if stopErr := s.stopProfiler(); stopErr != nil {
		err = errors.CombineErrors(err, errors.Wrap(stopErr, "stop pyroscope"))
	}
	if stopErr := s.shutdownTracing(ctx); stopErr != nil {
		err = errors.CombineErrors(err, errors.Wrap(stopErr, "shutdown uptrace"))
	}
	if err == nil {
		s.logger.Info("observability stopped")
	}
	return err
}
