package steps

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provision/internal/domain/provisionspec"
)

func TestMkdirStepRunCreatesAllMountPoints(t *testing.T) {
	tmp := t.TempDir()
	ws := provisionspec.WorkspaceSpec{Path: tmp}
	inst := provisionspec.InstanceSpec{ID: "pi-01"}

	step := &MkdirStep{}
	require.NoError(t, step.Run(context.Background(), ws, inst))

	for _, dir := range []string{
		imgRootfsMountPath(ws, inst),
		imgBootMountPath(ws, inst),
		instanceRootfsMountPath(ws, inst),
		instanceBootMountPath(ws, inst),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestMkdirStepCleanupRemovesDirectories(t *testing.T) {
	tmp := t.TempDir()
	ws := provisionspec.WorkspaceSpec{Path: tmp}
	inst := provisionspec.InstanceSpec{ID: "pi-01"}

	step := &MkdirStep{}
	ctx := context.Background()
	require.NoError(t, step.Run(ctx, ws, inst))

	step.Cleanup(ctx, ws, inst)

	_, err := os.Stat(instancePath(ws, inst))
	assert.True(t, os.IsNotExist(err))
}
