package deskbook

import (
	"bytes"
	"context"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaye/deskbook/internal/core/contact"
	"github.com/mkaye/deskbook/internal/store/textfile"
)

func newContactService(t *testing.T) *ContactService {
	t.Helper()
	store := textfile.NewContactStore(afero.NewMemMapFs(), "database.txt", zerolog.Nop())
	return NewContactService(store, []string{"Home", "Office"}, zerolog.Nop())
}

func mustAdd(t *testing.T, svc *ContactService, c contact.Contact) contact.Contact {
	t.Helper()
	added, err := svc.Add(context.Background(), c)
	require.NoError(t, err)
	return added
}

func TestContactService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("canonicalizes the group", func(t *testing.T) {
		svc := newContactService(t)

		added := mustAdd(t, svc, contact.Contact{Name: "Ada", Number: "555-1111", Group: "office"})
		assert.Equal(t, "Office", added.Group)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		svc := newContactService(t)

		added := mustAdd(t, svc, contact.Contact{Name: "  Ada  ", Number: " 555-1111 ", Group: "Home"})
		assert.Equal(t, "Ada", added.Name)
		assert.Equal(t, "555-1111", added.Number)
	})

	t.Run("rejects duplicates case-insensitively", func(t *testing.T) {
		svc := newContactService(t)
		mustAdd(t, svc, contact.Contact{Name: "Ada Lovelace", Number: "555-1111", Group: "Home"})

		_, err := svc.Add(ctx, contact.Contact{Name: "ADA LOVELACE", Number: "555-1111", Group: "Office"})
		require.ErrorIs(t, err, contact.ErrDuplicate)

		// same name with a different number is a different person
		_, err = svc.Add(ctx, contact.Contact{Name: "Ada Lovelace", Number: "555-2222", Group: "Home"})
		require.NoError(t, err)
	})

	t.Run("duplicate leaves the book unchanged", func(t *testing.T) {
		svc := newContactService(t)
		mustAdd(t, svc, contact.Contact{Name: "Ada", Number: "555-1111", Group: "Home"})

		_, err := svc.Add(ctx, contact.Contact{Name: "ada", Number: "555-1111", Group: "Office"})
		require.ErrorIs(t, err, contact.ErrDuplicate)

		contacts, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, contacts, 1)
		assert.Equal(t, "Home", contacts[0].Group)
	})

	t.Run("rejects invalid fields", func(t *testing.T) {
		svc := newContactService(t)

		_, err := svc.Add(ctx, contact.Contact{Name: "Ada", Number: "not a number", Group: "Home"})
		require.Error(t, err)

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
	})

	t.Run("rejects unknown group", func(t *testing.T) {
		svc := newContactService(t)

		_, err := svc.Add(ctx, contact.Contact{Name: "Ada", Number: "555-1111", Group: "Gym"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown group")
	})
}

func TestContactService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	svc := newContactService(t)

	mustAdd(t, svc, contact.Contact{Name: "charlie", Number: "555-3333", Group: "Home"})
	mustAdd(t, svc, contact.Contact{Name: "Ada", Number: "555-1111", Group: "Home"})
	mustAdd(t, svc, contact.Contact{Name: "Bob", Number: "555-2222", Group: "Office"})

	contacts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.Equal(t, "Ada", contacts[0].Name)
	assert.Equal(t, "Bob", contacts[1].Name)
	assert.Equal(t, "charlie", contacts[2].Name)

	got, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)

	_, err = svc.Get(ctx, 0)
	require.ErrorIs(t, err, contact.ErrNotFound)

	_, err = svc.Get(ctx, 4)
	require.ErrorIs(t, err, contact.ErrNotFound)
}

func TestContactService_Search(t *testing.T) {
	ctx := context.Background()
	svc := newContactService(t)

	mustAdd(t, svc, contact.Contact{Name: "Ada Lovelace", Number: "555-1111", Group: "Home"})
	mustAdd(t, svc, contact.Contact{Name: "adam smith", Number: "555-2222", Group: "Office"})
	mustAdd(t, svc, contact.Contact{Name: "Bob", Number: "555-3333", Group: "Office"})

	t.Run("by name prefix", func(t *testing.T) {
		got, err := svc.SearchName(ctx, "AD")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Ada Lovelace", got[0].Name)
		assert.Equal(t, "adam smith", got[1].Name)
	})

	t.Run("no matches is empty, not an error", func(t *testing.T) {
		got, err := svc.SearchName(ctx, "zz")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("by group", func(t *testing.T) {
		got, err := svc.SearchGroup(ctx, "office")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "adam smith", got[0].Name)
		assert.Equal(t, "Bob", got[1].Name)
	})

	t.Run("unknown group errors", func(t *testing.T) {
		_, err := svc.SearchGroup(ctx, "Gym")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown group")
	})
}

func TestContactService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("blank fields keep current values", func(t *testing.T) {
		svc := newContactService(t)
		mustAdd(t, svc, contact.Contact{Name: "Ada", Number: "555-1111", Email: "ada@example.com", Group: "Home"})

		got, err := svc.Update(ctx, 1, ContactUpdate{Email: "ada@newhost.com"})
		require.NoError(t, err)
		assert.Equal(t, "Ada", got.Name)
		assert.Equal(t, "555-1111", got.Number)
		assert.Equal(t, "ada@newhost.com", got.Email)
		assert.Equal(t, "Home", got.Group)
	})

	t.Run("update may not collide with another contact", func(t *testing.T) {
		svc := newContactService(t)
		mustAdd(t, svc, contact.Contact{Name: "Ada", Number: "555-1111", Group: "Home"})
		mustAdd(t, svc, contact.Contact{Name: "Bob", Number: "555-2222", Group: "Home"})

		// positions: 1=Ada, 2=Bob; renaming Bob onto Ada's pair must fail
		_, err := svc.Update(ctx, 2, ContactUpdate{Name: "ada", Number: "555-1111"})
		require.ErrorIs(t, err, contact.ErrDuplicate)
	})

	t.Run("keeping your own pair is not a collision", func(t *testing.T) {
		svc := newContactService(t)
		mustAdd(t, svc, contact.Contact{Name: "Ada", Number: "555-1111", Group: "Home"})

		_, err := svc.Update(ctx, 1, ContactUpdate{Group: "Office"})
		require.NoError(t, err)
	})

	t.Run("unknown position", func(t *testing.T) {
		svc := newContactService(t)

		_, err := svc.Update(ctx, 1, ContactUpdate{Email: "x@example.com"})
		require.ErrorIs(t, err, contact.ErrNotFound)
	})
}

func TestContactService_Remove(t *testing.T) {
	ctx := context.Background()
	svc := newContactService(t)

	mustAdd(t, svc, contact.Contact{Name: "Ada", Number: "555-1111", Group: "Home"})
	mustAdd(t, svc, contact.Contact{Name: "Bob", Number: "555-2222", Group: "Office"})

	removed, err := svc.Remove(ctx, "ADA", "555-1111")
	require.NoError(t, err)
	assert.Equal(t, "Ada", removed.Name)

	contacts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Bob", contacts[0].Name)

	_, err = svc.Remove(ctx, "Ada", "555-1111")
	require.ErrorIs(t, err, contact.ErrNotFound)
}

func TestContactService_ExportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("empty book writes header only", func(t *testing.T) {
		svc := newContactService(t)

		var buf bytes.Buffer
		n, err := svc.ExportCSV(ctx, &buf)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Equal(t, "Name,Contact,Email,Group\n", buf.String())
	})

	t.Run("rows follow display order", func(t *testing.T) {
		svc := newContactService(t)
		mustAdd(t, svc, contact.Contact{Name: "Bob", Number: "555-2222", Group: "Office"})
		mustAdd(t, svc, contact.Contact{Name: "Ada", Number: "555-1111", Email: "ada@example.com", Group: "Home"})

		var buf bytes.Buffer
		n, err := svc.ExportCSV(ctx, &buf)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t,
			"Name,Contact,Email,Group\n"+
				"Ada,555-1111,ada@example.com,Home\n"+
				"Bob,555-2222,,Office\n",
			buf.String(),
		)
	})
}
