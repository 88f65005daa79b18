package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fardannozami/sweat-tracker/internal/app/usecase"
)

// =============================================================================
// HANDLE MESSAGE USECASE TESTS
// =============================================================================
//
// Tests command routing logic:
// - #lapor → routes to ReportActivityUsecase
// - #skip → routes to SkipActivityUsecase
// - #streak → routes to GetStreakUsecase
// - #leaderboard → routes to GetLeaderboardUsecase
// - Unknown commands → returns empty string (no response)
//
// =============================================================================

type fixture struct {
	members      *mockMemberRepo
	observations *mockObservationRepo
	handle       *usecase.HandleMessageUsecase
}

func newFixture() *fixture {
	members := newMockMemberRepo()
	observations := newMockObservationRepo()
	clock := fixedClock()
	return &fixture{
		members:      members,
		observations: observations,
		handle: usecase.NewHandleMessageUsecase(
			usecase.NewReportActivityUsecase(members, observations, clock),
			usecase.NewSkipActivityUsecase(members, observations, clock),
			usecase.NewGetStreakUsecase(members, observations, clock, noopLogger()),
			usecase.NewGetLeaderboardUsecase(members, observations, clock, noopLogger()),
		),
	}
}

func TestHandleMessage_LaporCommand(t *testing.T) {
	f := newFixture()

	msg, err := f.handle.Execute(context.Background(), "user123", "TestUser", "#lapor")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := "Laporan diterima, TestUser sudah berkeringat 1 hari. Lanjutkan 🔥"
	if msg != expected {
		t.Errorf("Expected '%s', got '%s'", expected, msg)
	}

	m := f.members.members["user123"]
	if m == nil {
		t.Error("Member should have been created")
	} else if m.Name != "TestUser" {
		t.Errorf("Expected name 'TestUser', got '%s'", m.Name)
	}
}

func TestHandleMessage_LaporCaseInsensitive(t *testing.T) {
	for _, cmd := range []string{"#LAPOR", "#Lapor", "#LaPor", "#lapor"} {
		f := newFixture()

		msg, err := f.handle.Execute(context.Background(), "user1", "User", cmd)
		if err != nil {
			t.Fatalf("Unexpected error for '%s': %v", cmd, err)
		}
		if msg == "" {
			t.Errorf("Command '%s' should return a response", cmd)
		}
	}
}

func TestHandleMessage_LaporWithTrailingText(t *testing.T) {
	f := newFixture()

	msg, err := f.handle.Execute(context.Background(), "user1", "User", "#lapor hari ini olahraga lari")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if msg == "" {
		t.Error("#lapor with trailing text should still be recognized")
	}
}

func TestHandleMessage_SkipCommand(t *testing.T) {
	f := newFixture()

	msg, err := f.handle.Execute(context.Background(), "user1", "User", "#Skip lagi sakit")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(msg, "Hari libur User dicatat") {
		t.Errorf("Unexpected reply: %s", msg)
	}
}

func TestHandleMessage_StreakCommand(t *testing.T) {
	f := newFixture()
	seed(f.members, f.observations, "user1", "Alice", run(0, -1, -2))

	msg, err := f.handle.Execute(context.Background(), "user1", "Alice", "#streak")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{"Alice: streak 3 hari", "Terpanjang: 3 hari", "Total: 3 hari"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected %q in reply, got: %s", want, msg)
		}
	}
}

func TestHandleMessage_StreakCommand_Pending(t *testing.T) {
	f := newFixture()
	seed(f.members, f.observations, "user1", "Alice", run(-1, -2))

	msg, err := f.handle.Execute(context.Background(), "user1", "Alice", "#STREAK")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(msg, "streak 0 hari") || !strings.Contains(msg, "streak 2 hari masih bisa lanjut") {
		t.Errorf("Unexpected reply: %s", msg)
	}
}

func TestHandleMessage_StreakCommand_UnknownMember(t *testing.T) {
	f := newFixture()

	msg, err := f.handle.Execute(context.Background(), "ghost", "Ghost", "#streak")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(msg, "Ghost belum pernah laporan") {
		t.Errorf("Unexpected reply: %s", msg)
	}
}

func TestHandleMessage_LeaderboardCommand(t *testing.T) {
	f := newFixture()
	seed(f.members, f.observations, "user1", "Alice", run(0, -1, -2, -3, -4))

	msg, err := f.handle.Execute(context.Background(), "user1", "User", "#leaderboard")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(msg, "30 Days of Sweat Challenge") {
		t.Errorf("Response should contain '30 Days of Sweat Challenge', got '%s'", msg)
	}
	if !strings.Contains(msg, "Alice - 5 days streak") {
		t.Errorf("Response should rank Alice, got '%s'", msg)
	}
}

func TestHandleMessage_LeaderboardCaseInsensitive(t *testing.T) {
	f := newFixture()

	for _, cmd := range []string{"#LEADERBOARD", "#Leaderboard", "#LeaderBoard", "#leaderboard"} {
		msg, err := f.handle.Execute(context.Background(), "user1", "User", cmd)
		if err != nil {
			t.Fatalf("Unexpected error for '%s': %v", cmd, err)
		}
		if msg == "" {
			t.Errorf("Command '%s' should return a response", cmd)
		}
	}
}

func TestHandleMessage_UnknownCommand_ReturnsEmpty(t *testing.T) {
	f := newFixture()

	testCases := []string{
		"",
		"   ",
		"hello",
		"random message",
		"#invalid",
		"#help",
		"lapor",       // missing #
		"leaderboard", // missing #
		"#laporan",
	}

	for _, msg := range testCases {
		result, err := f.handle.Execute(context.Background(), "user1", "User", msg)
		if err != nil {
			t.Fatalf("Unexpected error for '%s': %v", msg, err)
		}
		if result != "" {
			t.Errorf("Unknown command '%s' should return empty string, got '%s'", msg, result)
		}
	}
}

func TestHandleMessage_WhitespaceHandling(t *testing.T) {
	testCases := []string{
		"  #lapor",
		"#lapor  ",
		"  #lapor  ",
		"\t#lapor",
		"\n#lapor\n",
	}

	for i, cmd := range testCases {
		f := newFixture()
		msg, err := f.handle.Execute(context.Background(), "user1", "User", cmd)
		if err != nil {
			t.Fatalf("Test %d: Unexpected error for '%q': %v", i, cmd, err)
		}
		if msg == "" {
			t.Errorf("Test %d: Command '%q' with whitespace should still work", i, cmd)
		}
	}
}
