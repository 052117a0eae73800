// Package lazybones binds lazily initialized values to the lifecycle of a
// host component.
//
// A host is anything implementing lifecycle.Source: it accepts observers and
// reports transitions (create, start, resume, pause, stop, destroy). Values
// bound to a host register receivers per phase, and the receivers run on the
// host's dispatch goroutine as the transitions arrive.
//
// # Lazy Values
//
// Bind defers construction until the first access or the first phase that has
// receivers, whichever comes first:
//
//	activity := lifecycle.NewRegistry()
//
//	player := lazybones.Bind(activity, func() (*Player, error) {
//	    return NewPlayer()
//	}).
//	    OnResume(func(p *Player) error { return p.Play() }).
//	    OnPause(func(p *Player) error { return p.Pause() }).
//	    OnDestroy(func(p *Player) error { return p.Release() })
//
//	p, err := player.Value()
//
// The initializer succeeds at most once. A failed initialization is not
// cached; the next access tries again. Use WithSyncMode(SyncLocked) when the
// value may be touched from other goroutines:
//
//	lazybones.Bind(activity, NewCache, lazybones.WithSyncMode(lazybones.SyncLocked))
//
// # Observable Properties
//
// Observe wraps a value that already exists. Receivers get a pointer to the
// current value, so changes made in one phase are visible in the next:
//
//	counter := lazybones.Observe(activity, Stats{}).
//	    ObserveOnStart(func(s *Stats) error { s.Starts++; return nil }).
//	    ObserveOnStop(func(s *Stats) error { return s.Flush() })
//
// A PropertyBuilder collects receivers first and attaches once on Build:
//
//	stats := lazybones.NewPropertyBuilder(activity, Stats{}).
//	    OnStart(countStart).
//	    OnDestroy(flush).
//	    Build()
//
// # Phases
//
// Receivers registered for PhaseAny fire on every transition. Receivers for
// the same phase run in registration order. DESTROY is terminal: nothing
// fires after it, including receivers registered later.
//
// # View Models
//
// View-model owners only know two phases, INITIALIZE and CLEAR:
//
//	owner := lifecycle.NewViewModelOwner()
//	bag := lazybones.BindViewModelFunc(owner, NewDisposables).
//	    OnClear(func(d *Disposables) error { return d.Dispose() })
//
//	_ = owner.Initialize(ctx)
//	_ = owner.Close()
//
// # Errors
//
// Failures are returned to whoever dispatched the phase, usually the host.
// A failing receiver stops the remaining receivers of that dispatch; later
// phases run normally:
//
//	if lazybones.IsReceiverFailed(err) { ... }
//	if lazybones.IsInitializationFailed(err) { ... }
//
// Registrations a binding cannot honour, such as PhaseClear on a component
// binding, are reported by Err.
//
// # Jobs
//
// LaunchOnStarted and friends run a block on a goroutine pool once the host
// reaches a phase and cancel its context on destroy. RepeatOnLifecycle
// restarts the block every time the host re-enters the phase:
//
//	lazybones.RepeatOnLifecycle(activity, lazybones.PhaseStart, func(ctx context.Context) error {
//	    return poll(ctx)
//	})
//
// # Observers
//
// Dispatch and initialization timings can be reported for metrics:
//
//	lazybones.Bind(activity, NewPlayer,
//	    lazybones.WithDispatchObserver(func(p lazybones.Phase, n int, d time.Duration, err error) {
//	        metrics.RecordDispatch(p.String(), n, d, err)
//	    }),
//	)
package lazybones
