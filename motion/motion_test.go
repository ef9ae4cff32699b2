package motion_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/choreo/chaos"
	"github.com/katalvlaran/choreo/core"
	"github.com/katalvlaran/choreo/motion"
)

const corpusYAML = `
skeleton:
  bones:
    - name: hips
      channels: [Xposition, Yposition, Zposition, Zrotation, Xrotation, Yrotation]
    - name: elbow
      parent: hips
      channels: [Zrotation]
    - name: end
      parent: elbow
clips:
  - name: wave
    frames:
      - {hips: [0, 90, 0, 10, 20, 30], elbow: [10]}
      - {hips: [1, 90, 0, 10, 20, 30], elbow: [15]}
`

func TestBone_Channels(t *testing.T) {
	hips := motion.Bone{Name: "hips", Channels: []string{"Xposition", "Yposition", "Zposition", "Zrotation", "Xrotation"}}
	assert.Equal(t, 5, hips.DOF())
	assert.Equal(t, 3, hips.TranslationDOF())
	assert.Equal(t, 2, hips.AngleDOF())

	tr, ang, err := hips.Split([]float64{1, 2, 3, 40, 50})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, tr)
	assert.Equal(t, []float64{40, 50}, ang)
	assert.Equal(t, []float64{1, 2, 3, 40, 50}, hips.Join(tr, ang))

	_, _, err = hips.Split([]float64{1})
	assert.ErrorIs(t, err, motion.ErrDOFMismatch)
	assert.ErrorIs(t, err, core.ErrPrecondition)

	end := motion.Bone{Name: "end"}
	assert.Equal(t, 0, end.AngleDOF())
}

func TestSkeleton_Validate(t *testing.T) {
	ok := motion.Skeleton{Bones: []motion.Bone{{Name: "a"}, {Name: "b", Parent: "a"}}}
	assert.NoError(t, ok.Validate())

	dup := motion.Skeleton{Bones: []motion.Bone{{Name: "a"}, {Name: "a"}}}
	assert.ErrorIs(t, dup.Validate(), motion.ErrDuplicateBone)

	orphan := motion.Skeleton{Bones: []motion.Bone{{Name: "a"}, {Name: "b", Parent: "x"}}}
	assert.ErrorIs(t, orphan.Validate(), motion.ErrUnknownBone)

	cyclic := motion.Skeleton{Bones: []motion.Bone{{Name: "a", Parent: "b"}, {Name: "b", Parent: "a"}}}
	assert.ErrorIs(t, cyclic.Validate(), motion.ErrNoRoot)
}

func TestDecodeCorpus(t *testing.T) {
	c, err := motion.DecodeCorpus([]byte(corpusYAML))
	require.NoError(t, err)
	require.Len(t, c.Skeleton.Bones, 3)
	root, ok := c.Skeleton.Root()
	require.True(t, ok)
	assert.Equal(t, "hips", root.Name)

	clip, ok := c.Clip("wave")
	require.True(t, ok)
	elbow, _ := c.Skeleton.Bone("elbow")
	angles, err := clip.Angles(elbow)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{10}, {15}}, angles)

	hips, _ := c.Skeleton.Bone("hips")
	angles, err = clip.Angles(hips)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, angles[0])
}

func TestDecodeCorpus_RejectsShortFrame(t *testing.T) {
	bad := `
skeleton:
  bones:
    - name: elbow
      channels: [Zrotation]
clips:
  - name: c
    frames:
      - {elbow: [10, 20]}
`
	_, err := motion.DecodeCorpus([]byte(bad))
	assert.ErrorIs(t, err, motion.ErrDOFMismatch)
}

func TestLoadCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(corpusYAML), 0o600))
	c, err := motion.LoadCorpus(path)
	require.NoError(t, err)
	assert.Len(t, c.Clips, 1)

	_, err = motion.LoadCorpus(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSequence_CloneIsDeep(t *testing.T) {
	s := motion.Sequence{
		Frames:     []motion.Frame{{"elbow": {10}}},
		Trajectory: chaos.Trajectory{Points: []chaos.Vector{{1, 1, 1}}, Times: []float64{0}},
	}
	c, err := s.Clone()
	require.NoError(t, err)
	assert.Equal(t, s, c)

	c.Frames[0]["elbow"][0] = 99
	c.Trajectory.Points[0][0] = 99
	assert.Equal(t, 10.0, s.Frames[0]["elbow"][0])
	assert.Equal(t, 1.0, s.Trajectory.Points[0][0])

	f := s.Frames[0].Clone()
	f["elbow"][0] = 5
	assert.Equal(t, 10.0, s.Frames[0]["elbow"][0])
}

func TestSequence_YAMLRoundTrip(t *testing.T) {
	s := motion.Sequence{Frames: []motion.Frame{{"elbow": {10}}, {"elbow": {12.5}}}}
	data, err := motion.EncodeSequence(s)
	require.NoError(t, err)
	back, err := motion.DecodeSequence(data)
	require.NoError(t, err)
	assert.Equal(t, s.Frames, back.Frames)
}
