package store

import (
	"context"
	"log/slog"
	"sort"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/choreo/chaos"
	"github.com/katalvlaran/choreo/cspace"
)

const (
	graphPrefix = "graph"
	bayesPrefix = "bayes"
	trajPrefix  = "traj"
)

// bayesRecord is the stored form of one Bayes table.
type bayesRecord struct {
	Parent  string              `msgpack:"parent"`
	Child   string              `msgpack:"child"`
	Entries []cspace.BayesEntry `msgpack:"entries"`
}

// SaveGraphs writes every graph in one batch, replacing earlier versions.
func (s *Store) SaveGraphs(_ context.Context, graphs map[string]*cspace.BoneGraph) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for name, bg := range graphs {
		data, err := msgpack.Marshal(bg.Snapshot())
		if err != nil {
			return errors.Wrapf(err, "store: encode graph %q", name)
		}
		if err := wb.Set(key(graphPrefix, name), data); err != nil {
			return errors.Wrapf(err, "store: set graph %q", name)
		}
	}
	if err := wb.Flush(); err != nil {
		return errors.Wrap(err, "store: flush graphs")
	}
	s.log.Debug("graphs saved", slog.Int("bones", len(graphs)))
	return nil
}

// LoadGraph reads one bone graph.
func (s *Store) LoadGraph(ctx context.Context, bone string) (*cspace.BoneGraph, error) {
	var snap cspace.Snapshot
	if err := s.get(ctx, key(graphPrefix, bone), &snap); err != nil {
		return nil, err
	}
	bg, err := cspace.Restore(snap)
	return bg, errors.Wrapf(err, "store: restore graph %q", bone)
}

// LoadGraphs reads every stored bone graph.
func (s *Store) LoadGraphs(ctx context.Context) (map[string]*cspace.BoneGraph, error) {
	out := make(map[string]*cspace.BoneGraph)
	err := s.scan(ctx, graphPrefix, func(bone string, data []byte) error {
		var snap cspace.Snapshot
		if err := msgpack.Unmarshal(data, &snap); err != nil {
			return errors.Wrapf(err, "decode graph %q", bone)
		}
		bg, err := cspace.Restore(snap)
		if err != nil {
			return errors.Wrapf(err, "restore graph %q", bone)
		}
		out[bone] = bg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Bones lists the bones with a stored graph, sorted.
func (s *Store) Bones(ctx context.Context) ([]string, error) {
	var out []string
	err := s.scan(ctx, graphPrefix, func(bone string, _ []byte) error {
		out = append(out, bone)
		return nil
	})
	sort.Strings(out)
	return out, err
}

// SaveBayes writes Bayes tables keyed by parent and child bone.
func (s *Store) SaveBayes(ctx context.Context, tables []*cspace.BayesTable) error {
	for _, t := range tables {
		rec := bayesRecord{Parent: t.Parent, Child: t.Child, Entries: t.Entries()}
		if err := s.put(ctx, key(bayesPrefix, t.Parent, t.Child), rec); err != nil {
			return err
		}
	}
	return nil
}

// LoadBayes reads every stored table whose bones are both in graphs.
// Tables for other bones are skipped.
func (s *Store) LoadBayes(ctx context.Context, graphs map[string]*cspace.BoneGraph) ([]*cspace.BayesTable, error) {
	var out []*cspace.BayesTable
	err := s.scan(ctx, bayesPrefix, func(pair string, data []byte) error {
		var rec bayesRecord
		if err := msgpack.Unmarshal(data, &rec); err != nil {
			return errors.Wrapf(err, "decode bayes %s", pair)
		}
		pg, ok := graphs[rec.Parent]
		if !ok {
			return nil
		}
		cg, ok := graphs[rec.Child]
		if !ok {
			return nil
		}
		t, err := cspace.RestoreBayes(pg, cg, rec.Entries)
		if err != nil {
			return err
		}
		out = append(out, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SaveTrajectory stores a trajectory under name.
func (s *Store) SaveTrajectory(ctx context.Context, name string, tr chaos.Trajectory) error {
	return s.put(ctx, key(trajPrefix, name), tr)
}

// LoadTrajectory reads the trajectory stored under name.
func (s *Store) LoadTrajectory(ctx context.Context, name string) (chaos.Trajectory, error) {
	var tr chaos.Trajectory
	err := s.get(ctx, key(trajPrefix, name), &tr)
	return tr, err
}
