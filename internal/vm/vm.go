// Package vm is the lifecycle facade for individual virtual machines.
//
// Operations address the VM's hypervisor host, not the VM itself: before a
// restore completes the VM does not exist as an addressable target.
// Network bring-up is the exception: it is driven from the fleet's init
// host.
package vm

import (
	"fmt"
	"path"
	"time"

	"github.com/lps-ufrj-br/pvectl/internal/command"
	"github.com/lps-ufrj-br/pvectl/internal/config"
	"github.com/lps-ufrj-br/pvectl/internal/executor"
	"github.com/lps-ufrj-br/pvectl/internal/lifecycle"
)

// DefaultSnapshotName is taken right after a successful provisioning.
const DefaultSnapshotName = "base"

// restoreSettle covers image restore and first boot. It elapses before the
// restore result is even checked; downstream behavior depends on that.
const restoreSettle = 40 * time.Second

// VM is a per-machine view over the orchestration primitives.
type VM struct {
	name      string
	spec      config.VMSpec
	imagePath string
	initHost  string
	scripts   config.ScriptsConfig
	gw        executor.Gateway
}

// New builds the facade for the named VM, resolving its image path and the
// init host up front. Missing entries are setup-time fatal errors.
func New(cfg *config.Config, name string, gw executor.Gateway) (*VM, error) {
	spec, err := cfg.VM(name)
	if err != nil {
		return nil, err
	}
	imagePath, err := cfg.ImagePath(spec.Image)
	if err != nil {
		return nil, err
	}
	return &VM{
		name:      name,
		spec:      spec,
		imagePath: imagePath,
		initHost:  cfg.Images.InitHost,
		scripts:   cfg.Scripts,
		gw:        gw,
	}, nil
}

func (v *VM) host() executor.Target {
	return executor.Host(v.spec.Host)
}

// Ping checks liveness of the VM's own host identity.
func (v *VM) Ping(ctx *lifecycle.Context) error {
	return v.gw.Ping(ctx, executor.Host(v.name))
}

// Run executes an ad-hoc shell instruction on the VM itself.
func (v *VM) Run(ctx *lifecycle.Context, instruction string) error {
	cmd := command.New(fmt.Sprintf("run on vm %s...", v.name)).Append(instruction)
	return v.gw.RunShell(ctx, executor.Host(v.name), cmd)
}

// Restore restores the VM from its image onto its host's storage, applies
// identity and resource attributes, and starts it. Runs on the host.
func (v *VM) Restore(ctx *lifecycle.Context) error {
	cmd := command.New("restore vm...").
		Appendf("qmrestore %s %d --storage %s --unique --force", v.imagePath, v.spec.VMID, v.spec.Storage).
		Appendf("qm set %d --name %s --sockets %d --cores %d --memory %d --cpu host",
			v.spec.VMID, v.spec.VMName, v.spec.Sockets, v.spec.Cores, v.spec.MemoryMB).
		Appendf("qm start %d", v.spec.VMID)
	return v.gw.RunShell(ctx, v.host(), cmd)
}

// Snapshot takes a named snapshot of the VM by id, on its host.
func (v *VM) Snapshot(ctx *lifecycle.Context, name string) error {
	cmd := command.New(fmt.Sprintf("snapshot vm %s...", v.name)).
		Appendf("qm snapshot %d %s", v.spec.VMID, name)
	return v.gw.RunShell(ctx, v.host(), cmd)
}

// Reboot stops then starts the VM by id, on its host.
func (v *VM) Reboot(ctx *lifecycle.Context) error {
	cmd := command.New(fmt.Sprintf("reboot vm %s...", v.name)).
		Appendf("qm stop %d", v.spec.VMID).
		Appendf("qm start %d", v.spec.VMID)
	return v.gw.RunShell(ctx, v.host(), cmd)
}

// ConfigureNetwork runs the external network configuration procedure on
// the init host, parameterized with the VM's identity and the rendered
// bring-up command.
func (v *VM) ConfigureNetwork(ctx *lifecycle.Context) error {
	scriptURL := v.scripts.ConfigureNetwork
	cmd := command.New(fmt.Sprintf("configure network on vm %s...", v.name)).
		Appendf("wget %s && bash %s %s %s", scriptURL, path.Base(scriptURL), v.name, v.spec.IPAddress)
	params := map[string]string{
		"command":    fmt.Sprintf("'%s'", cmd.Render()),
		"ip_address": fmt.Sprintf("'%s'", v.spec.IPAddress),
		"vm_name":    v.name,
	}
	return v.gw.RunProcedure(ctx, "configure_network.yaml", executor.Host(v.initHost), params)
}

// ConfigureOptions applies boot-on-startup and, when a device is
// configured, PCI passthrough. Runs on the host.
func (v *VM) ConfigureOptions(ctx *lifecycle.Context) error {
	cmd := command.New("set VM options...")
	if v.spec.PCIDevice != "" {
		cmd = cmd.Appendf("qm set %d -hostpci0 %s", v.spec.VMID, v.spec.PCIDevice)
	}
	cmd = cmd.Appendf("qm set %d --onboot 1", v.spec.VMID)
	return v.gw.RunShell(ctx, v.host(), cmd)
}

// Destroy stops and destroys the VM, including disks not otherwise
// referenced.
func (v *VM) Destroy(ctx *lifecycle.Context) error {
	cmd := command.New(fmt.Sprintf("destroy vm %s...", v.name)).
		Appendf("qm stop %d", v.spec.VMID).
		Appendf("qm destroy %d --destroy-unreferenced-disks", v.spec.VMID)
	return v.gw.RunShell(ctx, v.host(), cmd)
}

// Create provisions the VM: restore, configure network, configure options,
// then a best-effort snapshot and reboot. The restore settle wait elapses
// before the restore result gates the sequence.
func (v *VM) Create(ctx *lifecycle.Context, snapname string) error {
	if snapname == "" {
		snapname = DefaultSnapshotName
	}
	steps := []lifecycle.Step{
		{
			Name:   "restore image into the host",
			Run:    v.Restore,
			Settle: restoreSettle,
		},
		{
			Name: fmt.Sprintf("configure network into %s", v.name),
			Run:  v.ConfigureNetwork,
		},
		{
			Name: fmt.Sprintf("configure options into %s", v.name),
			Run:  v.ConfigureOptions,
		},
		{
			Name: "take a snapshot",
			Run: func(ctx *lifecycle.Context) error {
				return v.Snapshot(ctx, snapname)
			},
			Mode: lifecycle.BestEffort,
		},
		{
			Name: fmt.Sprintf("reboot vm %s", v.name),
			Run:  v.Reboot,
			Mode: lifecycle.BestEffort,
		},
	}
	return lifecycle.Run(ctx, steps)
}
