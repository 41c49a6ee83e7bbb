package provisionspec

import "testing"

func validWorkspace() WorkspaceSpec {
	return WorkspaceSpec{
		Path:            "/srv/netboot/workspace",
		ImgPath:         "/srv/netboot/images/rpi-os.img",
		ImgRootfsOffset: 272629760,
		ImgBootOffset:   4194304,
		IscsiTargetIP:   "10.0.0.5",
		NfsServerIP:     "10.0.0.5",
		NfsTftpDir:      "/srv/tftp",
	}
}

func validInstance() InstanceSpec {
	return InstanceSpec{
		ID:                "pi-01",
		IscsiInitiatorIQN: "iqn.2024-01.local.netboot:pi-01",
		IscsiTargetIQN:    "iqn.2024-01.local.netboot:target-pi-01",
		MacAddr:           "aa-bb-cc-dd-ee-ff",
		UserPassword:      "pi:$6$rounds=1000$abc$def",
		RootSSHKey:        "ssh-ed25519 AAAAtest",
	}
}

func TestWorkspaceSpecValidate(t *testing.T) {
	t.Run("valid spec passes", func(t *testing.T) {
		if err := validWorkspace().Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing path fails", func(t *testing.T) {
		ws := validWorkspace()
		ws.Path = ""
		if err := ws.Validate(); err == nil {
			t.Fatal("expected error for missing path")
		}
	})
}

func TestInstanceSpecValidate(t *testing.T) {
	t.Run("valid spec passes", func(t *testing.T) {
		if err := validInstance().Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	cases := []struct {
		name   string
		mutate func(*InstanceSpec)
	}{
		{"missing id", func(i *InstanceSpec) { i.ID = "" }},
		{"id with path separator", func(i *InstanceSpec) { i.ID = "pi/01" }},
		{"mac_addr colon separated", func(i *InstanceSpec) { i.MacAddr = "aa:bb:cc:dd:ee:ff" }},
		{"mac_addr too short", func(i *InstanceSpec) { i.MacAddr = "aa-bb-cc" }},
		{"user_password missing colon", func(i *InstanceSpec) { i.UserPassword = "no-separator" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inst := validInstance()
			tc.mutate(&inst)
			if err := inst.Validate(); err == nil {
				t.Fatalf("expected validation error for case %q", tc.name)
			}
		})
	}
}
