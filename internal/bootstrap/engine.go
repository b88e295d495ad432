package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/EcoHunt_Go/internal/behavior"
	"github.com/osse101/EcoHunt_Go/internal/concurrency"
	"github.com/osse101/EcoHunt_Go/internal/config"
	"github.com/osse101/EcoHunt_Go/internal/event"
	"github.com/osse101/EcoHunt_Go/internal/gamification"
	"github.com/osse101/EcoHunt_Go/internal/impact"
	"github.com/osse101/EcoHunt_Go/internal/issuance"
	"github.com/osse101/EcoHunt_Go/internal/logger"
	"github.com/osse101/EcoHunt_Go/internal/metrics"
	"github.com/osse101/EcoHunt_Go/internal/orchestrator"
	"github.com/osse101/EcoHunt_Go/internal/photostore"
	"github.com/osse101/EcoHunt_Go/internal/profile"
	"github.com/osse101/EcoHunt_Go/internal/repository"
	"github.com/osse101/EcoHunt_Go/internal/reward"
	"github.com/osse101/EcoHunt_Go/internal/submission"
	"github.com/osse101/EcoHunt_Go/internal/validation"
	"github.com/osse101/EcoHunt_Go/internal/verification"
	"github.com/osse101/EcoHunt_Go/internal/worker"
)

// EngineDependencies are the collaborators built outside the engine. All of
// them are optional.
type EngineDependencies struct {
	Profiles  profile.Service
	Issuances repository.Issuance
	Publisher event.Publisher
	Pool      *worker.Pool
}

// Engine is the assembled scoring pipeline and its entry service
type Engine struct {
	Orchestrator *orchestrator.Orchestrator
	Submissions  submission.Service
	Impact       *impact.Calculator
	Issuer       issuance.Issuer
}

// BuildEngine wires the agents, reward economy, photo store and issuer
// selected by cfg into an orchestrator and submission service
func BuildEngine(ctx context.Context, cfg *config.Config, deps EngineDependencies) (*Engine, error) {
	policy, err := verification.ParseFailurePolicy(cfg.VerificationFailurePolicy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPolicy, err)
	}

	tokenomics, err := reward.LoadTokenomics(ctx, cfg.TokenomicsPath, validation.NewSchemaValidator())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedTokenomics, err)
	}

	catalog, err := gamification.LoadCatalog(ctx, cfg.GamificationCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCatalog, err)
	}

	photos, err := NewPhotoStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedPhotoStore, err)
	}

	issuer, err := NewIssuer(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedIssuer, err)
	}

	impactCalc := impact.NewCalculator()
	detector := verification.NewHeuristicDetector()
	orch := orchestrator.New(orchestrator.Dependencies{
		Verifier:     verification.NewScorer(detector, policy),
		Impact:       impactCalc,
		Behavior:     behavior.NewAnalyzer(behavior.WithDailyCap(tokenomics.MaxDailyReward)),
		Rewards:      reward.NewCalculator(tokenomics),
		Gamification: gamification.NewEngine(catalog),
		Photos:       photos,
		SeenPhotos:   detector.Registry(),
		Issuer:       issuer,
		Pool:         deps.Pool,
	},
		orchestrator.WithTimeout(cfg.SubmissionTimeout),
		orchestrator.WithRecorder(metrics.NewResultRecorder()),
	)

	logger.FromContext(ctx).Info(LogMsgEngineAssembled,
		"verification_policy", cfg.VerificationFailurePolicy,
		"tokenomics_version", tokenomics.Version,
		"photo_store", cfg.PhotoStore,
		"issuer", cfg.Issuer,
		"timeout", cfg.SubmissionTimeout)

	return &Engine{
		Orchestrator: orch,
		Submissions:  submission.NewService(orch, deps.Profiles, deps.Issuances, issuer, deps.Publisher, concurrency.NewLockManager()),
		Impact:       impactCalc,
		Issuer:       issuer,
	}, nil
}

// NewPhotoStore builds the photo store backend named by cfg.PhotoStore
func NewPhotoStore(ctx context.Context, cfg *config.Config) (photostore.Store, error) {
	if cfg.PhotoStore != config.PhotoStoreS3 {
		return photostore.NewMemoryStore(cfg.PhotoMemoryCapacity), nil
	}
	return photostore.NewS3Store(ctx, photostore.S3Config{
		Bucket:          cfg.PhotoBucket,
		Region:          cfg.PhotoRegion,
		Endpoint:        cfg.PhotoEndpoint,
		AccessKeyID:     cfg.PhotoAccessKeyID,
		SecretAccessKey: cfg.PhotoSecretKey,
		PublicDomain:    cfg.PhotoPublicDomain,
	})
}

// NewIssuer builds the issuance backend named by cfg.Issuer. A disabled
// issuer is returned as nil, which the pipeline reports as skipped.
func NewIssuer(ctx context.Context, cfg *config.Config) (issuance.Issuer, error) {
	switch cfg.Issuer {
	case config.IssuerDisabled:
		logger.FromContext(ctx).Info(LogMsgIssuanceDisabled)
		return nil, nil
	case config.IssuerEthereum:
		eth, err := issuance.NewEthereumIssuer(ctx, issuance.EthereumConfig{
			RPCURL:          cfg.EthRPCURL,
			ChainID:         cfg.EthChainID,
			PrivateKey:      cfg.EthPrivateKey,
			ContractAddress: cfg.TokenContractAddress,
			Decimals:        cfg.TokenDecimals,
		})
		if err != nil {
			return nil, err
		}
		return eth, nil
	default:
		return issuance.NewSimulatedIssuer(SimulatedIssuerStartBlock), nil
	}
}
