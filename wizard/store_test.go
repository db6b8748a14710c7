package wizard

import (
	"testing"

	"github.com/google/uuid"
)

func TestStore_CreateGetDelete(t *testing.T) {
	st := NewStore()
	userID := uuid.New()

	created := st.Create(userID)
	if created.UserID != userID {
		t.Errorf("UserID = %s, want %s", created.UserID, userID)
	}

	got, err := st.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("Get returned session %s, want %s", got.ID, created.ID)
	}

	if err := st.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Get(created.ID); err != ErrSessionNotFound {
		t.Errorf("Get after Delete = %v, want ErrSessionNotFound", err)
	}
	if err := st.Delete(created.ID); err != ErrSessionNotFound {
		t.Errorf("second Delete = %v, want ErrSessionNotFound", err)
	}
}

func TestStore_UpdateMutatesAndSnapshots(t *testing.T) {
	st := NewStore()
	created := st.Create(uuid.New())

	snap, err := st.Update(created.ID, func(s *Session) error {
		s.TemplateID = CustomTemplateID
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if snap.TemplateID != CustomTemplateID {
		t.Errorf("snapshot TemplateID = %q, want sentinel", snap.TemplateID)
	}

	got, _ := st.Get(created.ID)
	if got.TemplateID != CustomTemplateID {
		t.Errorf("stored TemplateID = %q, want sentinel", got.TemplateID)
	}
}

func TestStore_UpdateUnknownSession(t *testing.T) {
	st := NewStore()
	_, err := st.Update(uuid.New(), func(s *Session) error { return nil })
	if err != ErrSessionNotFound {
		t.Errorf("Update on unknown id = %v, want ErrSessionNotFound", err)
	}
}
