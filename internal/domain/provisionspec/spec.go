// Package provisionspec defines the workspace and instance specification
// types consumed by the provisioner, along with the struct-tag validation
// rules enforced when they are loaded from JSON.
package provisionspec

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// WorkspaceSpec describes the shared infrastructure a fleet of instances
// provisions against: where on disk the workspace lives, where the golden
// image is, and how to reach the iSCSI target and NFS/TFTP server.
type WorkspaceSpec struct {
	Path            string `json:"path" validate:"required"`
	ImgPath         string `json:"img_path" validate:"required"`
	ImgRootfsOffset uint64 `json:"img_rootfs_offset" validate:"min=0"`
	ImgBootOffset   uint64 `json:"img_boot_offset" validate:"min=0"`
	IscsiTargetIP   string `json:"iscsi_target_ip" validate:"required"`
	NfsServerIP     string `json:"nfs_server_ip" validate:"required"`
	NfsTftpDir      string `json:"nfs_tftp_dir" validate:"required"`
}

// InstanceSpec describes a single machine's identity: the iSCSI initiator
// and target it logs into, its network hardware address, and the
// credentials baked into its boot and root partitions.
type InstanceSpec struct {
	ID                string `json:"id" validate:"required,provision_id"`
	IscsiInitiatorIQN string `json:"iscsi_initiator_iqn" validate:"required"`
	IscsiTargetIQN    string `json:"iscsi_target_iqn" validate:"required"`
	MacAddr           string `json:"mac_addr" validate:"required,provision_macaddr"`
	UserPassword      string `json:"user_password" validate:"required,provision_userpass"`
	RootSSHKey        string `json:"root_ssh_key" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// id is used as a path component and hostname; restrict to characters
	// that are safe in both contexts.
	mustRegister(v, "provision_id", `^[a-zA-Z0-9_-]+$`)

	// mac_addr follows the dash-separated convention the NFS/TFTP tree is
	// keyed on, not colon-separated like net.ParseMAC expects.
	mustRegister(v, "provision_macaddr", `^[0-9a-fA-F]{2}(-[0-9a-fA-F]{2}){5}$`)

	// user_password is "username:crypt6-hash" as consumed by userconf.txt.
	mustRegister(v, "provision_userpass", `^[^:]+:.+$`)

	return v
}

// Validate checks a WorkspaceSpec against its struct-tag rules.
func (w WorkspaceSpec) Validate() error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("invalid workspace spec: %w", err)
	}
	return nil
}

// Validate checks an InstanceSpec against its struct-tag rules.
func (i InstanceSpec) Validate() error {
	if err := validate.Struct(i); err != nil {
		return fmt.Errorf("invalid instance spec %q: %w", i.ID, err)
	}
	return nil
}
