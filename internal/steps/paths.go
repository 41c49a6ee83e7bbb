package steps

import (
	"path/filepath"

	"provision/internal/domain/provisionspec"
)

const (
	mountDir         = "mount"
	imgMountDir      = "img"
	instanceMountDir = "instance"
	rootfsMountDir   = "rootfs"
	bootMountDir     = "boot"
)

// instancePath returns <workspace.path>/<instance.id>/<parts...>.
func instancePath(ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec, parts ...string) string {
	elems := append([]string{ws.Path, inst.ID}, parts...)
	return filepath.Join(elems...)
}

func imgRootfsMountPath(ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) string {
	return instancePath(ws, inst, mountDir, imgMountDir, rootfsMountDir)
}

func imgBootMountPath(ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) string {
	return instancePath(ws, inst, mountDir, imgMountDir, bootMountDir)
}

func instanceRootfsMountPath(ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) string {
	return instancePath(ws, inst, mountDir, instanceMountDir, rootfsMountDir)
}

func instanceBootMountPath(ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) string {
	return instancePath(ws, inst, mountDir, instanceMountDir, bootMountDir)
}

func imgMountPath(ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) string {
	return instancePath(ws, inst, mountDir, imgMountDir)
}

func instanceMountPath(ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) string {
	return instancePath(ws, inst, mountDir, instanceMountDir)
}

func workspaceMountPath(ws provisionspec.WorkspaceSpec, inst provisionspec.InstanceSpec) string {
	return instancePath(ws, inst, mountDir)
}
