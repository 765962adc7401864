// Package config defines the fleet topology configuration and its loader.
package config

// Default locations of the external configuration scripts fetched by the
// configure-node and configure-network operations.
const (
	DefaultConfigureNodeScript    = "https://raw.githubusercontent.com/lps-ufrj-br/datacenter/refs/heads/main/data/scripts/configure_node.py"
	DefaultConfigureNetworkScript = "https://raw.githubusercontent.com/lps-ufrj-br/datacenter/refs/heads/main/data/scripts/configure_network.sh"
)

// Executor backends.
const (
	ExecutorAnsible = "ansible"
	ExecutorSSH     = "ssh"
)

// Config holds the full datacenter configuration.
type Config struct {
	// Executor selects the remote execution backend: "ansible" or "ssh".
	// Default: "ansible"
	Executor string `mapstructure:"executor" yaml:"executor"`

	SSH     SSHConfig     `mapstructure:"ssh" yaml:"ssh"`
	Ansible AnsibleConfig `mapstructure:"ansible" yaml:"ansible"`
	Scripts ScriptsConfig `mapstructure:"scripts" yaml:"scripts"`

	// MasterKeyFile is read when the PVE_MASTER_KEY environment variable
	// is not set. It holds the shared cluster join secret.
	MasterKeyFile string `mapstructure:"master_key_file" yaml:"master_key_file"`

	Clusters map[string]ClusterSpec `mapstructure:"cluster" yaml:"cluster"`
	Storage  map[string]StorageSpec `mapstructure:"storage" yaml:"storage"`
	VMs      map[string]VMSpec      `mapstructure:"vm" yaml:"vm"`
	Images   ImagesConfig           `mapstructure:"images" yaml:"images"`
}

// SSHConfig configures the direct SSH executor.
type SSHConfig struct {
	User    string `mapstructure:"user" yaml:"user"`       // default: root
	Port    int    `mapstructure:"port" yaml:"port"`       // default: 22
	KeyFile string `mapstructure:"key_file" yaml:"key_file"`
}

// AnsibleConfig configures the ansible executor.
type AnsibleConfig struct {
	Inventory   string `mapstructure:"inventory" yaml:"inventory"`       // default: /etc/ansible/hosts
	PlaybookDir string `mapstructure:"playbook_dir" yaml:"playbook_dir"` // default: playbooks
}

// ScriptsConfig holds the URLs of externally hosted configuration scripts.
type ScriptsConfig struct {
	ConfigureNode    string `mapstructure:"configure_node" yaml:"configure_node"`
	ConfigureNetwork string `mapstructure:"configure_network" yaml:"configure_network"`
}

// ClusterSpec is the immutable attribute snapshot of one cluster.
type ClusterSpec struct {
	// Host is the designated master, the only node cluster creation and
	// storage registration run on.
	Host      string `mapstructure:"host" yaml:"host"`
	IPAddress string `mapstructure:"ip_address" yaml:"ip_address"`

	// Nodes lists every member host. The cluster name doubles as the
	// target group; the SSH executor resolves it through this list.
	Nodes []string `mapstructure:"nodes" yaml:"nodes"`
}

// StorageSpec describes one NFS-backed storage target.
type StorageSpec struct {
	Name   string `mapstructure:"name" yaml:"name"`
	Server string `mapstructure:"server" yaml:"server"`
	Path   string `mapstructure:"path" yaml:"path"`
}

// VMSpec is the immutable attribute snapshot of one virtual machine.
type VMSpec struct {
	Host      string `mapstructure:"host" yaml:"host"`
	VMID      int    `mapstructure:"vmid" yaml:"vmid"`
	Image     string `mapstructure:"image" yaml:"image"`
	Sockets   int    `mapstructure:"sockets" yaml:"sockets"`
	Cores     int    `mapstructure:"cores" yaml:"cores"`
	MemoryMB  int    `mapstructure:"memory_mb" yaml:"memory_mb"`
	Storage   string `mapstructure:"storage" yaml:"storage"`
	VMName    string `mapstructure:"vm_name" yaml:"vm_name"`
	IPAddress string `mapstructure:"ip_address" yaml:"ip_address"`

	// PCIDevice enables host PCI passthrough when non-empty.
	PCIDevice string `mapstructure:"pci" yaml:"pci"`
}

// ImagesConfig maps image keys to restorable image paths and names the
// init host that drives network bring-up for freshly restored VMs.
type ImagesConfig struct {
	InitHost string            `mapstructure:"hostname" yaml:"hostname"`
	Paths    map[string]string `mapstructure:"paths" yaml:"paths"`
	S3       S3Config          `mapstructure:"s3" yaml:"s3"`
}

// S3Config points at an S3-compatible image catalog. Optional; the image
// subcommands refuse to run without endpoint and credentials.
type S3Config struct {
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint"`
	Region    string `mapstructure:"region" yaml:"region"`
	Bucket    string `mapstructure:"bucket" yaml:"bucket"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`
}
