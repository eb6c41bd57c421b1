package service

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"insurance-advisor/internal/faqindex"
	"insurance-advisor/internal/knowledge"
)

// LoaderConfig names the store files and advisor options.
type LoaderConfig struct {
	KnowledgeBasePath string
	FAQIndexPath      string
	Options           Options
}

// Loader builds the Advisor exactly once. The knowledge base and FAQ index
// are read in parallel; if either fails no Advisor is produced, and every
// caller sees the same cached result.
type Loader struct {
	cfg    LoaderConfig
	logger *zap.Logger

	once    sync.Once
	advisor *Advisor
	err     error
}

func NewLoader(cfg LoaderConfig, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{cfg: cfg, logger: logger}
}

// Advisor returns the loaded advisor, loading it on first use.
func (l *Loader) Advisor() (*Advisor, error) {
	l.once.Do(func() {
		l.advisor, l.err = l.load()
	})
	return l.advisor, l.err
}

func (l *Loader) load() (*Advisor, error) {
	start := time.Now()
	var (
		kb  *knowledge.Store
		idx *faqindex.Index
		g   errgroup.Group
	)
	g.Go(func() error {
		var err error
		kb, err = knowledge.Load(l.cfg.KnowledgeBasePath)
		return err
	})
	g.Go(func() error {
		var err error
		idx, err = faqindex.Load(l.cfg.FAQIndexPath)
		return err
	})
	if err := g.Wait(); err != nil {
		l.logger.Error("Failed to load advisor data", zap.Error(err))
		return nil, err
	}

	l.logger.Info("Advisor data loaded",
		zap.Int("products", kb.Len()),
		zap.Int("faqs", idx.Store.Len()),
		zap.Int("vocabulary", idx.Vectorizer.Dimension()),
		zap.Duration("took", time.Since(start)),
	)
	return NewAdvisor(kb, idx, l.cfg.Options, l.logger), nil
}
