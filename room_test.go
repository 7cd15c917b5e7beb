package main

import (
	"slices"
	"testing"
)

func TestAddMemberKeepsJoinOrder(t *testing.T) {
	r := newRoom("123456", GameRPS, defaultSettings())

	r.addMember("a", "Alice")
	r.addMember("b", "Bob")
	r.addMember("c", "Carol")
	r.addMember("b", "Bob again")

	if !slices.Equal(r.order, []string{"a", "b", "c"}) {
		t.Errorf("order = %v, want [a b c]", r.order)
	}
	if r.names["b"] != "Bob" {
		t.Errorf("re-adding a member changed their name to %q", r.names["b"])
	}
	if r.memberCount() != 3 {
		t.Errorf("memberCount = %d, want 3", r.memberCount())
	}
}

func TestRemoveMemberReelectsOwner(t *testing.T) {
	r := newRoom("123456", GameRPS, defaultSettings())
	r.addMember("a", "Alice")
	r.addMember("b", "Bob")
	r.addMember("c", "Carol")
	r.Owner = "a"

	r.removeMember("a")

	if r.Owner != "b" {
		t.Errorf("owner = %s, want b", r.Owner)
	}
	if r.has("a") {
		t.Error("removed member still present")
	}

	// A non-owner departure leaves ownership alone.
	r.removeMember("c")
	if r.Owner != "b" {
		t.Errorf("owner = %s after non-owner left, want b", r.Owner)
	}

	r.removeMember("b")
	if !r.empty() {
		t.Error("room not empty after last member left")
	}
}

func TestRemoveMemberDropsFromEngine(t *testing.T) {
	r := newRoom("123456", GameRPS, defaultSettings())
	r.addMember("a", "Alice")
	r.addMember("b", "Bob")

	g, ok := r.rpsState()
	if !ok {
		t.Fatal("rps room has no rps engine")
	}
	if _, ok := g.scores["b"]; !ok {
		t.Fatal("member not registered with the engine")
	}

	r.removeMember("b")

	if _, ok := g.scores["b"]; ok {
		t.Error("departed member still tracked by the engine")
	}
}

func TestFull(t *testing.T) {
	r := newRoom("123456", GameRPS, defaultSettings())
	for i, id := range []string{"a", "b", "c", "d"} {
		if r.full() {
			t.Fatalf("room full at %d members", i)
		}
		r.addMember(id, id)
	}
	if !r.full() {
		t.Error("room not full at capacity")
	}

	u := newRoom("654321", GameUNO, defaultSettings())
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		u.addMember(id, id)
	}
	if u.full() {
		t.Error("uno room reported full; uno rooms never fill")
	}
}

func TestInfo(t *testing.T) {
	r := newRoom("123456", GameUNO, defaultSettings())
	r.addMember("a", "Alice")
	r.addMember("b", "Bob")
	r.Owner = "a"

	info := r.info()

	if info.ID != "123456" || info.Game != GameUNO {
		t.Errorf("info = %+v", info)
	}
	if !slices.Equal(info.MemberNames, []string{"Alice", "Bob"}) {
		t.Errorf("memberNames = %v, want [Alice Bob]", info.MemberNames)
	}
	if info.OwnerName != "Alice" {
		t.Errorf("ownerName = %s, want Alice", info.OwnerName)
	}
	if info.MemberCount != 2 {
		t.Errorf("memberCount = %d, want 2", info.MemberCount)
	}
}
