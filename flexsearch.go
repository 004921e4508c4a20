// Package flexsearch wires the index manager (C6), write pipeline (C5),
// query compiler (C7), and search executor (C8) into the two service
// contracts spec.md §6 names: IndexService and SearchService. There is
// no HTTP or CLI front end here (that surface is out of scope, §1); this
// is the in-process façade a caller embeds.
//
// Grounded on bundoc/database.go's Database type: a single struct owning
// the process-wide registries and collaborators, exposing collection
// lifecycle and query operations as plain methods.
package flexsearch

import (
	"github.com/Enielezi/FlexSearch/analyzer"
	"github.com/Enielezi/FlexSearch/indexmanager"
	"github.com/Enielezi/FlexSearch/internal/ferrors"
	"github.com/Enielezi/FlexSearch/querycompiler"
	"github.com/Enielezi/FlexSearch/rules"
	"github.com/Enielezi/FlexSearch/searchexecutor"
	"github.com/Enielezi/FlexSearch/settingsbuilder"
	"github.com/Enielezi/FlexSearch/writepipeline"
)

// Service implements IndexService and SearchService (§6) over a single
// process-wide index manager and write pipeline.
type Service struct {
	manager   *indexmanager.Manager
	pipeline  *writepipeline.Pipeline
	analyzers *analyzer.Registry
	rulesEng  *rules.Engine
}

// Options configures a Service's write pipeline.
type Options struct {
	Pipeline writepipeline.Options
}

// New builds a Service backed by store (pass indexmanager.NewMemStore()
// for a standalone, in-process settings store).
func New(store indexmanager.PersistenceStore, opts Options) (*Service, error) {
	rulesEng, err := rules.NewEngine()
	if err != nil {
		return nil, err
	}
	analyzers := analyzer.NewRegistry()
	mgr := indexmanager.NewManager(store, analyzers, rulesEng)

	svc := &Service{manager: mgr, analyzers: analyzers, rulesEng: rulesEng}
	svc.pipeline = writepipeline.New(svc.resolve, opts.Pipeline)
	return svc, nil
}

// resolve adapts indexmanager.Manager.Resolve (concrete *Runtime) to
// writepipeline.Resolver's interface-typed return.
func (s *Service) resolve(index string) (writepipeline.IndexRuntime, bool) {
	rt, ok := s.manager.Resolve(index)
	if !ok {
		return nil, false
	}
	return rt, true
}

// BuildSetting validates def and compiles it into an immutable
// IndexSetting, implementing ISettingsBuilder (§6, §4.9).
func (s *Service) BuildSetting(def *settingsbuilder.Definition) (*indexmanager.IndexSetting, *settingsbuilder.Validator, error) {
	return settingsbuilder.Build(def, s.analyzers, s.rulesEng.EvaluateString)
}

// AddIndex registers setting, building a live runtime immediately when
// online is true.
func (s *Service) AddIndex(setting *indexmanager.IndexSetting, online bool) error {
	return s.manager.Add(setting, online)
}

// UpdateIndex closes and rebuilds an index's runtime with a new setting.
func (s *Service) UpdateIndex(setting *indexmanager.IndexSetting) error {
	return s.manager.Update(setting)
}

// DeleteIndex removes an index's definition and runtime entirely.
func (s *Service) DeleteIndex(name string) error {
	return s.manager.Delete(name)
}

// OpenIndex transitions an Offline index to Online.
func (s *Service) OpenIndex(name string) error {
	return s.manager.Open(name)
}

// CloseIndex transitions an Online index to Offline.
func (s *Service) CloseIndex(name string) error {
	return s.manager.Close(name)
}

// GetIndex returns the live runtime for an Online index.
func (s *Service) GetIndex(name string) (*indexmanager.Runtime, bool) {
	return s.manager.Resolve(name)
}

// IndexExists reports whether name has any registration, online or not.
func (s *Service) IndexExists(name string) bool {
	_, err := s.manager.Status(name)
	return err == nil
}

// IndexStatus returns an index's current lifecycle state.
func (s *Service) IndexStatus(name string) (indexmanager.State, error) {
	return s.manager.Status(name)
}

// PerformCommand submits cmd to the write pipeline and blocks for its
// result (§4.5, §6).
func (s *Service) PerformCommand(cmd writepipeline.Command) writepipeline.Result {
	return s.pipeline.Submit(cmd)
}

// PerformCommandAsync submits cmd without waiting; reply, if non-nil, is
// sent the command's Result exactly once.
func (s *Service) PerformCommandAsync(cmd writepipeline.Command, reply chan writepipeline.Result) {
	s.pipeline.SubmitAsync(cmd, reply)
}

// CommandQueue exposes the write pipeline for direct submission by
// callers that already hold a *writepipeline.Pipeline reference.
func (s *Service) CommandQueue() *writepipeline.Pipeline {
	return s.pipeline
}

// ShutDown drains and stops the write pipeline. Index runtimes are left
// as-is; callers that also want every index closed should call
// CloseIndex for each first.
func (s *Service) ShutDown() {
	s.pipeline.Shutdown()
}

// Search compiles filter against the named index and executes it,
// implementing SearchService's search(index runtime, search query)
// (§4.7, §4.8).
func (s *Service) Search(index string, filter *querycompiler.Filter, sq searchexecutor.SearchQuery) (*searchexecutor.Result, error) {
	rt, ok := s.manager.Resolve(index)
	if !ok {
		return nil, ferrors.ErrIndexNotFound
	}
	query, err := querycompiler.Compile(rt, filter, true, nil)
	if err != nil {
		return nil, err
	}
	return searchexecutor.Execute(rt, query, sq)
}

// SearchProfile resolves a named or script-selected search profile and
// executes it, implementing SearchService's searchProfile (§4.7).
func (s *Service) SearchProfile(index, selectorScript, profileName string, bindings map[string]string, sq searchexecutor.SearchQuery) (*searchexecutor.Result, error) {
	rt, ok := s.manager.Resolve(index)
	if !ok {
		return nil, ferrors.ErrIndexNotFound
	}
	query, err := querycompiler.CompileProfile(rt, selectorScript, profileName, bindings)
	if err != nil {
		return nil, err
	}
	return searchexecutor.Execute(rt, query, sq)
}
