package ssh

// PrivilegedCommand exposes privilegedCommand for tests.
func PrivilegedCommand(user, password, command string) (string, string) {
	return privilegedCommand(user, password, command)
}

// AuthMethodCount reports how many auth methods cfg resolves to.
func AuthMethodCount(cfg Config) (int, error) {
	methods, agentConn, err := authMethods(cfg, discardLogger())
	if err != nil {
		return 0, err
	}

	closeAgent(agentConn)

	return len(methods), nil
}

// HostKeyCallbackErr reports whether building the host key callback fails.
func HostKeyCallbackErr(cfg Config) error {
	_, err := hostKeyCallback(cfg)

	return err
}
