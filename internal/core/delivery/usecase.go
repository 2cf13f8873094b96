package delivery

import (
	"context"
	"sync"
	"time"

	"weatherpush.app/internal/core/weather"
	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

// UseCase is the server-side scheduled entry point: one invocation
// enumerates all enabled subscriptions, resolves one snapshot per location
// group, fans out deliveries and prunes dead endpoints. Invocations are
// stateless; a terminated run is simply retried whole on the next tick.
type UseCase struct {
	subscriptionRepo ports.SubscriptionRepository
	weatherProvider  ports.WeatherProviderManager
	pushSender       ports.PushSender
	config           ports.ConfigProvider
	logger           ports.Logger
	metrics          ports.MetricsCollector
}

type UseCaseDependencies struct {
	SubscriptionRepo ports.SubscriptionRepository
	WeatherProvider  ports.WeatherProviderManager
	PushSender       ports.PushSender
	Config           ports.ConfigProvider
	Logger           ports.Logger
	Metrics          ports.MetricsCollector
}

// Report aggregates one run's outcome. Individual send failures never fail
// the run itself.
type Report struct {
	Sent            int `json:"sent"`
	Failed          int `json:"failed"`
	Gone            int `json:"gone"`
	ProcessedGroups int `json:"processedGroups"`
}

type sendResult struct {
	subscriptionID string
	result         ports.DeliveryResult
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.SubscriptionRepo == nil {
		return nil, errors.NewValidationError("subscription repository is required")
	}
	if deps.WeatherProvider == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if deps.PushSender == nil {
		return nil, errors.NewValidationError("push sender is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &UseCase{
		subscriptionRepo: deps.SubscriptionRepo,
		weatherProvider:  deps.WeatherProvider,
		pushSender:       deps.PushSender,
		config:           deps.Config,
		logger:           deps.Logger,
		metrics:          deps.Metrics,
	}, nil
}

// Run executes one delivery cycle. Missing delivery credentials are the only
// hard failure; everything else degrades to counts in the report.
func (uc *UseCase) Run(ctx context.Context) (Report, error) {
	if !uc.config.GetPushConfig().IsConfigured() {
		return Report{}, errors.NewConfigurationError("push delivery credentials are not configured", nil)
	}

	subscriptions, err := uc.subscriptionRepo.ListEnabled(ctx)
	if err != nil {
		return Report{}, errors.NewDatabaseError("list enabled subscriptions", err)
	}
	if len(subscriptions) == 0 {
		uc.logger.Debug("No enabled subscriptions, nothing to deliver")
		return Report{}, nil
	}

	groups := uc.groupByLocation(subscriptions)
	uc.logger.Info("Starting delivery run",
		ports.F("subscriptions", len(subscriptions)),
		ports.F("groups", len(groups)))

	report := Report{}
	pause := uc.config.GetSchedulerConfig().GroupFetchPause
	first := true

	for key, group := range groups {
		// Short pause between group fetches to respect upstream rate
		// limits; not required for correctness.
		if !first && pause > 0 {
			uc.sleep(ctx, pause)
		}
		first = false

		snapshot, err := uc.fetchGroupSnapshot(ctx, group)
		if err != nil {
			// A group-level fetch failure must not abort the run.
			uc.logger.Error("Skipping group after snapshot fetch failure",
				ports.F("group", key),
				ports.F("subscribers", len(group)),
				ports.F("error", err))
			continue
		}

		results := uc.fanOut(ctx, group, ComposePayloads(snapshot))
		uc.reduce(ctx, results, &report)
		report.ProcessedGroups++
	}

	uc.logger.Info("Delivery run completed",
		ports.F("sent", report.Sent),
		ports.F("failed", report.Failed),
		ports.F("gone", report.Gone),
		ports.F("groups", report.ProcessedGroups))
	return report, nil
}

// groupByLocation partitions subscriptions by their location bucket so
// neighbors share one weather fetch. Records without a stored location
// cannot be resolved server-side and are skipped.
func (uc *UseCase) groupByLocation(subscriptions []*ports.SubscriptionData) map[string][]*ports.SubscriptionData {
	precision := uc.config.GetSchedulerConfig().GroupPrecision
	if precision <= 0 {
		precision = weather.DefaultGroupPrecision
	}

	groups := make(map[string][]*ports.SubscriptionData)
	for _, sub := range subscriptions {
		if sub.Lat == nil || sub.Lon == nil {
			uc.logger.Debug("Subscription has no stored location, skipping",
				ports.F("id", sub.ID))
			continue
		}
		key := weather.GroupKey(*sub.Lat, *sub.Lon, precision)
		groups[key] = append(groups[key], sub)
	}
	return groups
}

// fetchGroupSnapshot fetches one snapshot for the whole group, always via
// the free backend: this path runs unattended and must not consume
// rate-limited paid quota.
func (uc *UseCase) fetchGroupSnapshot(ctx context.Context, group []*ports.SubscriptionData) (*weather.Snapshot, error) {
	lead := group[0]
	data, err := uc.weatherProvider.GetSnapshot(ctx, *lead.Lat, *lead.Lon, ports.BackendFree)
	if err != nil {
		return nil, err
	}
	if lead.LocationName != "" && data.LocationLabel == "" {
		data.LocationLabel = lead.LocationName
	}
	return weather.FromSnapshotData(data), nil
}

// fanOut delivers the payloads to every subscriber in the group through a
// bounded worker pool. Each subscriber's sends are isolated; results are
// collected into a list and reduced afterwards, avoiding shared counters.
func (uc *UseCase) fanOut(ctx context.Context, group []*ports.SubscriptionData, payloads []Payload) []sendResult {
	workers := uc.config.GetSchedulerConfig().FanOutWorkers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(group) {
		workers = len(group)
	}

	jobs := make(chan *ports.SubscriptionData)
	out := make(chan sendResult, len(group)*len(payloads))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sub := range jobs {
				uc.deliverTo(ctx, sub, payloads, out)
			}
		}()
	}

	for _, sub := range group {
		jobs <- sub
	}
	close(jobs)
	wg.Wait()
	close(out)

	results := make([]sendResult, 0, len(group)*len(payloads))
	for r := range out {
		results = append(results, r)
	}
	return results
}

// deliverTo sends each payload to one subscriber. A Gone outcome stops the
// remaining payloads for that subscriber; the endpoint is already dead.
func (uc *UseCase) deliverTo(ctx context.Context, sub *ports.SubscriptionData, payloads []Payload, out chan<- sendResult) {
	for _, payload := range payloads {
		body, err := payload.Marshal()
		if err != nil {
			uc.logger.Error("Failed to encode payload", ports.F("error", err))
			out <- sendResult{subscriptionID: sub.ID, result: ports.DeliveryTransientFailure}
			continue
		}

		result, err := uc.pushSender.Send(ctx, ports.PushParams{
			Subscription: sub,
			Payload:      body,
		})
		if err != nil && result == ports.DeliveryUnknown {
			result = ports.DeliveryTransientFailure
		}
		if err != nil {
			uc.logger.Debug("Push send failed",
				ports.F("id", sub.ID),
				ports.F("result", result.String()),
				ports.F("error", err))
		}

		out <- sendResult{subscriptionID: sub.ID, result: result}
		if result == ports.DeliveryGone {
			return
		}
	}
}

// reduce folds the results list into the aggregate report and prunes every
// endpoint the push service reported gone.
func (uc *UseCase) reduce(ctx context.Context, results []sendResult, report *Report) {
	pruned := make(map[string]bool)

	for _, r := range results {
		uc.metrics.RecordDelivery(ctx, r.result)

		switch r.result {
		case ports.DeliveryDelivered:
			report.Sent++
		case ports.DeliveryGone:
			report.Gone++
			if !pruned[r.subscriptionID] {
				pruned[r.subscriptionID] = true
				uc.prune(ctx, r.subscriptionID)
			}
		default:
			report.Failed++
		}
	}
}

// prune deletes a subscription whose endpoint is permanently gone. Not
// optional cleanup: it prevents unbounded growth of dead endpoints.
func (uc *UseCase) prune(ctx context.Context, id string) {
	if err := uc.subscriptionRepo.Delete(ctx, id); err != nil && !errors.IsNotFoundError(err) {
		uc.logger.Error("Failed to prune dead subscription",
			ports.F("id", id),
			ports.F("error", err))
		return
	}
	uc.logger.Info("Pruned dead subscription", ports.F("id", id))
}

func (uc *UseCase) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
