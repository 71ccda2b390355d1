package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex inv_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortCode returns an upper-case short code of the given length,
// used as the random suffix of human-facing invoice numbers.
func GenerateShortCode(length int) string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.ReplaceAll(id, "-", "")
	id = strings.ReplaceAll(id, "_", "")

	if len(id) > length {
		id = id[:length]
	}
	return strings.ToUpper(id)
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_USER         = "user"
	UUID_PREFIX_PLAN         = "plan"
	UUID_PREFIX_SUBSCRIPTION = "sub"
	UUID_PREFIX_BAG_USAGE    = "usage"
	UUID_PREFIX_CREDIT       = "cred"
	UUID_PREFIX_PICKUP       = "pick"
	UUID_PREFIX_INVOICE      = "inv"
	UUID_PREFIX_INVOICE_LINE = "line"
	UUID_PREFIX_TRANSACTION  = "txn"
	UUID_PREFIX_HOLIDAY      = "hol"
	UUID_PREFIX_PRICE        = "price"
	UUID_PREFIX_PRICE_ITEM   = "item"
	UUID_PREFIX_ZONE         = "zone"
)
