package tenant

import (
	"bytes"
	"context"
	"fmt"

	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/provisionerr"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"golang.org/x/crypto/ssh"
)

// AuthorizeKey appends publicKey to the session user's authorized_keys unless it is already there.
// The key must be in authorized_keys format; only its first line is used.
func AuthorizeKey(ctx context.Context, session *remote.Session, publicKey []byte) error {
	line, err := normalizeKey(publicKey)
	if err != nil {
		return err
	}

	sshDir := session.Home() + "/.ssh"
	authorizedKeys := sshDir + "/authorized_keys"

	_, err = session.Standard.Run(ctx, "mkdir -p "+sshDir+" && chmod 700 "+sshDir)
	if err != nil {
		return fmt.Errorf("prepare %s: %w", sshDir, err)
	}

	err = remote.AppendLine(ctx, session.Standard, authorizedKeys, line)
	if err != nil {
		return err
	}

	_, err = session.Standard.Run(ctx, "chmod 600 "+authorizedKeys)
	if err != nil {
		return fmt.Errorf("restrict %s: %w", authorizedKeys, err)
	}

	return nil
}

func normalizeKey(publicKey []byte) (string, error) {
	first, _, _ := bytes.Cut(bytes.TrimSpace(publicKey), []byte("\n"))

	key, comment, _, _, err := ssh.ParseAuthorizedKey(first)
	if err != nil {
		return "", fmt.Errorf("%w: public key: %w", provisionerr.ErrInvalidArgument, err)
	}

	line := string(bytes.TrimSpace(ssh.MarshalAuthorizedKey(key)))
	if comment != "" {
		line += " " + comment
	}

	return line, nil
}
