package sftpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"lpg-management/internal/config"
	"lpg-management/internal/logger"
)

type Config struct {
	Host      string
	Port      int
	User      string
	Pass      string
	RemoteDir string
	// KnownHosts is an OpenSSH known_hosts file, used unless InsecureIgnoreHostKey is set.
	KnownHosts            string
	InsecureIgnoreHostKey bool
}

func FromConfig(c *config.Config) Config {
	return Config{
		Host:                  c.SFTPHost,
		Port:                  c.SFTPPort,
		User:                  c.SFTPUser,
		Pass:                  c.SFTPPass,
		RemoteDir:             c.SFTPDir,
		KnownHosts:            c.SFTPKnownHosts,
		InsecureIgnoreHostKey: c.SFTPInsecureIgnoreHostKey,
	}
}

func (c Config) withDefaults() Config {
	if c.Port <= 0 {
		c.Port = 22
	}
	if c.RemoteDir == "" {
		c.RemoteDir = "/"
	}
	return c
}

func (c Config) check() error {
	if c.Host == "" || c.User == "" || c.Pass == "" {
		return errors.New("sftp: missing env SFTP_HOST / SFTP_USER / SFTP_PASS")
	}
	return nil
}

func hostKeyCallback(c Config) (ssh.HostKeyCallback, error) {
	if c.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	if c.KnownHosts == "" {
		return nil, errors.New("sftp: SFTP_KNOWN_HOSTS is required when host key checking is on")
	}
	cb, err := knownhosts.New(c.KnownHosts)
	if err != nil {
		return nil, fmt.Errorf("sftp: known hosts: %w", err)
	}
	return cb, nil
}

// UploadFile copies a local file to RemoteDir/remoteName.
func UploadFile(ctx context.Context, cfg Config, localPath, remoteName string, log *logger.Logger) error {
	if err := cfg.check(); err != nil {
		return err
	}
	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("sftp: open local file: %w", err)
	}
	defer src.Close()
	return Upload(ctx, cfg, src, remoteName, log)
}

// Upload streams r to RemoteDir/remoteName, creating the directory when needed.
func Upload(ctx context.Context, cfg Config, r io.Reader, remoteName string, log *logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}
	if err := cfg.check(); err != nil {
		return err
	}
	cfg = cfg.withDefaults()

	cb, err := hostKeyCallback(cfg)
	if err != nil {
		return err
	}
	sshCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Pass)},
		HostKeyCallback: cb,
		Timeout:         20 * time.Second,
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	sshClient, err := dial(ctx, addr, sshCfg)
	if err != nil {
		return err
	}
	defer sshClient.Close()

	sftpCli, err := sftp.NewClient(sshClient)
	if err != nil {
		return fmt.Errorf("sftp: new client: %w", err)
	}
	defer sftpCli.Close()

	if err := sftpCli.MkdirAll(cfg.RemoteDir); err != nil {
		return fmt.Errorf("sftp: mkdir %s: %w", cfg.RemoteDir, err)
	}

	remotePath := path.Join(cfg.RemoteDir, remoteName)
	dst, err := sftpCli.Create(remotePath)
	if err != nil {
		return fmt.Errorf("sftp: create remote file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, r)
	if err != nil {
		return fmt.Errorf("sftp: upload copy: %w", err)
	}
	log.Info("export uploaded", "host", cfg.Host, "path", remotePath, "bytes", n)
	return nil
}

func dial(ctx context.Context, addr string, sshCfg *ssh.ClientConfig) (*ssh.Client, error) {
	d := net.Dialer{Timeout: sshCfg.Timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("sftp: dial canceled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("sftp: dial error: %w", err)
	}
	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, addr, sshCfg)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("sftp: dial error: %w", err)
	}
	_ = conn.SetDeadline(time.Time{})
	return ssh.NewClient(c, chans, reqs), nil
}
