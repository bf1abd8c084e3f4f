package ports_test

import (
	"testing"

	"github.com/aretw0/docrender/pkg/adapters/memory"
	"github.com/aretw0/docrender/pkg/ports"
)

func TestDocumentStore_Contract(t *testing.T) {
	ports.RunDocumentStoreContract(t, memory.NewStore())
}
