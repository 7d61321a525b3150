package notify

import (
	"testing"

	"github.com/mejbaurrahman/JHF/internal/app/system/status"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"github.com/mejbaurrahman/JHF/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAmount(t *testing.T) {
	if got := Amount(500); got != "500 BDT" {
		t.Errorf("Amount(500) = %q", got)
	}
	if got := Amount(12.5); got != "12.5 BDT" {
		t.Errorf("Amount(12.5) = %q", got)
	}
}

func TestMessages(t *testing.T) {
	msg, typ := DonationStatus(500, status.DonationConfirmed)
	if typ != models.NotificationSuccess || msg != "Your donation of 500 BDT has been confirmed. Thank you!" {
		t.Errorf("confirmed: %q %q", msg, typ)
	}
	if _, typ := DonationStatus(500, status.DonationFailed); typ != models.NotificationError {
		t.Errorf("failed type = %q", typ)
	}

	msg, typ = FeeRecorded(200, 3, 2025, status.FeePaid)
	if typ != models.NotificationSuccess || msg != "Your membership fee of 200 BDT for March 2025 has been received." {
		t.Errorf("fee: %q %q", msg, typ)
	}
	if _, typ := FeeRecorded(200, 3, 2025, status.FeePending); typ != models.NotificationInfo {
		t.Errorf("pending type = %q", typ)
	}
}

func TestNilNotifier(t *testing.T) {
	var n *Notifier
	ctx, cancel := testutil.TestContext()
	defer cancel()
	n.Send(ctx, primitive.NewObjectID(), "hi", models.NotificationInfo)
}

func TestSend(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	n := New(db, nil)
	uid := primitive.NewObjectID()
	n.Send(ctx, uid, "hello", models.NotificationWarning)
	n.Send(ctx, primitive.NilObjectID, "dropped", models.NotificationInfo)

	count, err := db.Collection("notifications").CountDocuments(ctx, map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}
