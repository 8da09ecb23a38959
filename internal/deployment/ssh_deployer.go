package deployment

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const defaultSSHPort = "22"

// Target is a parsed deploy URL
type Target struct {
	User string
	Host string
	Port string
	Path string
}

// Address returns host:port for dialing
func (t Target) Address() string {
	return net.JoinHostPort(t.Host, t.Port)
}

// ParseDeployURL parses a deploy URL in format user@host:path or user@host:port:path
func ParseDeployURL(deployURL string) (Target, error) {
	if deployURL == "" {
		return Target{}, fmt.Errorf("deploy URL is empty")
	}

	user, hostPath, ok := strings.Cut(deployURL, "@")
	if !ok || user == "" {
		return Target{}, fmt.Errorf("invalid deploy URL format: expected user@host:path")
	}

	host, remotePath, ok := strings.Cut(hostPath, ":")
	if !ok || host == "" {
		return Target{}, fmt.Errorf("invalid deploy URL format: expected user@host:path")
	}

	port := defaultSSHPort
	if maybePort, rest, found := strings.Cut(remotePath, ":"); found {
		if _, err := strconv.Atoi(maybePort); err == nil {
			port = maybePort
			remotePath = rest
		}
	}
	if remotePath == "" {
		return Target{}, fmt.Errorf("invalid deploy URL format: remote path is empty")
	}

	return Target{User: user, Host: host, Port: port, Path: remotePath}, nil
}

// SSHDeployer publishes generated standings files via SCP
type SSHDeployer struct {
	keyPath        string
	knownHostsPath string
	deployURL      string
	client         *ssh.Client
	connected      bool
}

// NewSSHDeployer creates a new SSH deployer.
// knownHostsPath may be empty, in which case host keys are not verified.
func NewSSHDeployer(deployURL, keyPath, knownHostsPath string) *SSHDeployer {
	return &SSHDeployer{
		keyPath:        keyPath,
		knownHostsPath: knownHostsPath,
		deployURL:      deployURL,
	}
}

func (d *SSHDeployer) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if d.knownHostsPath == "" {
		log.Warn().Msg("DEPLOY_KNOWN_HOSTS not set; skipping host key verification")
		return ssh.InsecureIgnoreHostKey(), nil
	}
	callback, err := knownhosts.New(d.knownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load known hosts %s: %w", d.knownHostsPath, err)
	}
	return callback, nil
}

// Connect establishes SSH connection
func (d *SSHDeployer) Connect() error {
	if d.connected {
		return nil
	}

	target, err := ParseDeployURL(d.deployURL)
	if err != nil {
		return fmt.Errorf("failed to parse deploy URL: %w", err)
	}

	keyData, err := os.ReadFile(d.keyPath)
	if err != nil {
		return fmt.Errorf("failed to read SSH key file %s: %w", d.keyPath, err)
	}

	signer, err := ssh.ParsePrivateKey(keyData)
	if err != nil {
		return fmt.Errorf("failed to parse SSH private key: %w", err)
	}

	hostKeyCallback, err := d.hostKeyCallback()
	if err != nil {
		return err
	}

	config := &ssh.ClientConfig{
		User: target.User,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: hostKeyCallback,
		Timeout:         30 * time.Second,
	}

	d.client, err = ssh.Dial("tcp", target.Address(), config)
	if err != nil {
		return fmt.Errorf("failed to connect to SSH server %s: %w", target.Host, err)
	}

	d.connected = true
	log.Info().
		Str("host", target.Host).
		Str("user", target.User).
		Msg("Successfully connected to SSH server")

	return nil
}

// Disconnect closes SSH connection
func (d *SSHDeployer) Disconnect() error {
	if d.client != nil {
		err := d.client.Close()
		d.connected = false
		d.client = nil
		return err
	}
	return nil
}

// Deploy uploads localPath under its base name to the remote directory
func (d *SSHDeployer) Deploy(ctx context.Context, localPath string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("deploy cancelled: %w", err)
	}
	return d.DeployFile(localPath, filepath.Base(localPath))
}

// DeployFile uploads a file via SCP
func (d *SSHDeployer) DeployFile(localPath, filename string) error {
	if !d.connected {
		if err := d.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
	}

	target, err := ParseDeployURL(d.deployURL)
	if err != nil {
		return fmt.Errorf("failed to parse deploy URL: %w", err)
	}

	localFile, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open local file %s: %w", localPath, err)
	}
	defer localFile.Close()

	fileInfo, err := localFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat local file: %w", err)
	}

	session, err := d.client.NewSession()
	if err != nil {
		// A dropped connection is re-established on the next call
		d.Disconnect()
		return fmt.Errorf("failed to create SSH session: %w", err)
	}
	defer session.Close()

	// Remote paths are always slash separated
	remoteFilePath := path.Join(target.Path, filename)

	stdin, err := session.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}

	if err := session.Start(fmt.Sprintf("scp -t %s", remoteFilePath)); err != nil {
		return fmt.Errorf("failed to start SCP session: %w", err)
	}

	if _, err := fmt.Fprintf(stdin, "C0644 %d %s\n", fileInfo.Size(), filename); err != nil {
		return fmt.Errorf("failed to write SCP header: %w", err)
	}

	if _, err := io.Copy(stdin, localFile); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	if _, err := stdin.Write([]byte{0}); err != nil {
		return fmt.Errorf("failed to write SCP end marker: %w", err)
	}

	stdin.Close()
	if err := session.Wait(); err != nil {
		return fmt.Errorf("SCP session failed: %w", err)
	}

	log.Info().
		Str("local_path", localPath).
		Str("remote_path", remoteFilePath).
		Int64("size", fileInfo.Size()).
		Msg("Successfully deployed file via SCP")

	return nil
}
