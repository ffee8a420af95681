package common

import (
	"os"
	"os/user"

	"github.com/denisbrodbeck/machineid"
	"github.com/google/uuid"
)

const clientIDSalt = "tabpfn-cli"

// GetClientIdentifier returns a UUID identifying this CLI installation. The
// machine id is hashed with an app specific key so the raw id never leaves
// the host.
func GetClientIdentifier() uuid.UUID {

	if id, err := machineid.ProtectedID(clientIDSalt); err == nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(id))
	}

	hostname, err := os.Hostname()
	if err != nil {
		return uuid.New()
	}

	name := hostname
	if usr, err := user.Current(); err == nil {
		name = usr.Username + "@" + hostname
	}

	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(name))
}
