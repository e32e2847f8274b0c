package v1alpha1

// NewHost returns a Host with every default filled in. Only the connection host is left empty.
func NewHost() *Host {
	return &Host{
		APIVersion: APIVersion,
		Kind:       Kind,
		Spec: Spec{
			Connection: NewConnection(),
			Tenant:     NewTenantSpec(),
			Sandbox:    NewSandboxSpec(),
			Web:        NewWebSpec(),
			Database:   NewDatabaseSpec(),
			Server:     NewServerSpec(),
		},
	}
}

// NewConnection returns the connection defaults.
func NewConnection() Connection {
	return Connection{
		Port:           DefaultPort,
		User:           DefaultUser,
		IdentityFile:   DefaultIdentityFile,
		PublicKeyFile:  DefaultPublicKeyFile,
		KnownHostsFile: DefaultKnownHostsFile,
		UseAgent:       true,
		Timeout:        DefaultTimeout,
	}
}

// NewTenantSpec returns the tenant defaults.
func NewTenantSpec() TenantSpec {
	return TenantSpec{
		Group:          DefaultWebGroup,
		AdminGroup:     DefaultAdminGroup,
		Shell:          DefaultShell,
		PasswordLength: DefaultPasswordLength,
		PythonVersion:  PythonVersion3,
	}
}

// NewSandboxSpec returns the sandbox defaults.
func NewSandboxSpec() SandboxSpec {
	return SandboxSpec{
		Name:          DefaultSandboxName,
		BootstrapURL2: DefaultBootstrapURL2,
		BootstrapURL3: DefaultBootstrapURL3,
	}
}

// NewWebSpec returns the web defaults.
func NewWebSpec() WebSpec {
	return WebSpec{
		WebGroup:       DefaultWebGroup,
		LogGroup:       DefaultLogGroup,
		Processes:      DefaultProcesses,
		Port:           DefaultHTTPPort,
		MaxBodySize:    DefaultMaxBodySize,
		VassalDir:      DefaultVassalDir,
		SitesAvailable: DefaultSitesAvailable,
		SitesEnabled:   DefaultSitesEnabled,
	}
}

// NewDatabaseSpec returns the database defaults.
func NewDatabaseSpec() DatabaseSpec {
	return DatabaseSpec{
		PasswordLength: DefaultPasswordLength,
		NameLength:     DefaultDBNameLength,
		NameSuffix:     DefaultDBNameSuffix,
		MaxAttempts:    DefaultMaxAttempts,
	}
}

// NewServerSpec returns the server preparation defaults.
func NewServerSpec() ServerSpec {
	return ServerSpec{
		Locale:   DefaultLocale,
		Packages: DefaultPackages(),
		Services: DefaultServices(),
	}
}
