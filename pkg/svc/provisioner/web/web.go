// Package web publishes a tenant's site through a uWSGI emperor vassal and an nginx virtual host.
//
// Publishing is not guarded by an existence check. Every run re-renders and overwrites
// both configurations.
package web

import (
	"context"
	"fmt"

	"al.essio.dev/pkg/shellescape"
	"github.com/devantler-tech/hostkit/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/hostkit/pkg/io/generator/siteconfig"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
)

// Host-wide configuration directories.
const (
	DefaultVassalDir      = v1alpha1.DefaultVassalDir
	DefaultSitesAvailable = v1alpha1.DefaultSitesAvailable
	DefaultSitesEnabled   = v1alpha1.DefaultSitesEnabled
	DefaultLogGroup       = v1alpha1.DefaultLogGroup
)

// Options controls publication.
type Options struct {
	WebGroup       string
	LogGroup       string
	Processes      int
	Port           int
	MaxBodySize    string
	SandboxName    string
	VassalDir      string
	SitesAvailable string
	SitesEnabled   string
}

// DefaultOptions returns the publication defaults.
func DefaultOptions() Options {
	return Options{
		WebGroup:       siteconfig.DefaultWebGroup,
		LogGroup:       DefaultLogGroup,
		Processes:      siteconfig.DefaultProcesses,
		Port:           siteconfig.DefaultPort,
		MaxBodySize:    siteconfig.DefaultMaxBodySize,
		SandboxName:    siteconfig.DefaultSandbox,
		VassalDir:      DefaultVassalDir,
		SitesAvailable: DefaultSitesAvailable,
		SitesEnabled:   DefaultSitesEnabled,
	}
}

// Publication describes the web configuration written for a tenant.
type Publication struct {
	Tenant          string
	VirtualHost     string
	ProxyConfigPath string
	UnitConfigPath  string
	SocketPath      string
}

// Manager publishes tenant sites.
type Manager struct {
	options Options
}

// NewManager returns a Manager.
func NewManager(options Options) *Manager {
	return &Manager{options: options}
}

// Publish writes the site layout, unit config and virtual host for the session user.
// Commands run as the tenant except the group change and the host-wide links and
// files, which go through the session's administrative handle.
func (m *Manager) Publish(ctx context.Context, session *remote.Session, version string) (Publication, error) {
	layout := siteconfig.NewLayout(session.User, m.options.SandboxName)

	unit, err := siteconfig.NewUnitConfig(layout, version)
	if err != nil {
		return Publication{}, err
	}

	unit.WebGroup = m.options.WebGroup
	unit.Processes = m.options.Processes

	vhost := siteconfig.NewVirtualHost(layout)
	vhost.Port = m.options.Port
	vhost.MaxBodySize = m.options.MaxBodySize

	unitText, err := siteconfig.RenderUnitConfig(unit)
	if err != nil {
		return Publication{}, err
	}

	vhostText, err := siteconfig.RenderVirtualHost(vhost)
	if err != nil {
		return Publication{}, err
	}

	err = m.prepareHome(ctx, session, layout)
	if err != nil {
		return Publication{}, err
	}

	publication := Publication{
		Tenant:          layout.Tenant,
		VirtualHost:     vhost.ServerName,
		ProxyConfigPath: m.options.SitesAvailable + "/" + layout.Tenant,
		UnitConfigPath:  layout.UnitConfig,
		SocketPath:      layout.Socket,
	}

	err = remote.WriteFile(ctx, session.Standard, layout.UnitConfig, unitText)
	if err != nil {
		return Publication{}, err
	}

	err = link(ctx, session.Admin, layout.UnitConfig, m.options.VassalDir+"/"+layout.Tenant+".ini")
	if err != nil {
		return Publication{}, err
	}

	err = remote.WriteFile(ctx, session.Admin, publication.ProxyConfigPath, vhostText)
	if err != nil {
		return Publication{}, err
	}

	err = link(ctx, session.Admin, publication.ProxyConfigPath, m.options.SitesEnabled+"/"+layout.Tenant)
	if err != nil {
		return Publication{}, err
	}

	return publication, nil
}

func (m *Manager) prepareHome(ctx context.Context, session *remote.Session, layout siteconfig.Layout) error {
	_, err := session.Standard.Run(ctx, "chmod 775 "+shellescape.Quote(layout.Home))
	if err != nil {
		return fmt.Errorf("open %s to the web group: %w", layout.Home, err)
	}

	err = remote.AppendLine(ctx, session.Standard, layout.Home+"/.bashrc", "umask 002")
	if err != nil {
		return err
	}

	_, err = session.Standard.Run(ctx, "mkdir -p "+shellescape.Quote(layout.StaticDir))
	if err != nil {
		return fmt.Errorf("create %s: %w", layout.SiteDir, err)
	}

	logs := shellescape.Quote(layout.AccessLog) + " " + shellescape.Quote(layout.ErrorLog)

	_, err = session.Standard.Run(ctx, "touch "+logs)
	if err != nil {
		return fmt.Errorf("create proxy logs: %w", err)
	}

	_, err = session.Admin.Run(ctx, "chgrp "+shellescape.Quote(m.options.LogGroup)+" "+logs)
	if err != nil {
		return fmt.Errorf("hand proxy logs to %s: %w", m.options.LogGroup, err)
	}

	return nil
}

func link(ctx context.Context, admin remote.Executor, target, name string) error {
	_, err := admin.Run(ctx, "ln -sfn "+shellescape.Quote(target)+" "+shellescape.Quote(name))
	if err != nil {
		return fmt.Errorf("link %s: %w", name, err)
	}

	return nil
}
