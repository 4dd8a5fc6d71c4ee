package matcher

import (
	"reflect"
	"testing"
)

func TestBuildPlanFullInput(t *testing.T) {
	input := NewMatchInput("Daft Punk", "One More Time", "Discovery")
	plan := BuildPlan(input)
	want := []QueryStep{
		{QueryTracks, `track:"one more time" artist:"daft punk" album:"discovery"`},
		{QueryTracks, `track:"one more time" artist:"daft punk"`},
		{QueryAlbums, `artist:"daft punk" album:"discovery"`},
		{QueryTracks, `track:"one more time"`},
		{QueryAlbums, `album:"discovery"`},
		{QueryTracks, `daft punk one more time discovery`},
	}
	if !reflect.DeepEqual(plan.Steps, want) {
		t.Errorf("plan steps:\n got %v\nwant %v", plan.Steps, want)
	}
}

func TestBuildPlanWithoutAlbum(t *testing.T) {
	input := NewMatchInput("Daft Punk", "One More Time", "")
	plan := BuildPlan(input)
	want := []QueryStep{
		{QueryTracks, `track:"one more time" artist:"daft punk"`},
		{QueryAlbums, `artist:"daft punk"`},
		{QueryTracks, `track:"one more time"`},
		{QueryTracks, `daft punk one more time`},
	}
	if !reflect.DeepEqual(plan.Steps, want) {
		t.Errorf("plan steps:\n got %v\nwant %v", plan.Steps, want)
	}
}

func TestBuildPlanWithoutArtist(t *testing.T) {
	input := NewMatchInput("", "One More Time", "Discovery")
	plan := BuildPlan(input)
	want := []QueryStep{
		{QueryTracks, `track:"one more time" album:"discovery"`},
		{QueryTracks, `track:"one more time"`},
		{QueryAlbums, `album:"discovery"`},
		{QueryTracks, `one more time discovery`},
	}
	if !reflect.DeepEqual(plan.Steps, want) {
		t.Errorf("plan steps:\n got %v\nwant %v", plan.Steps, want)
	}
}

func TestBuildPlanTitleOnly(t *testing.T) {
	input := NewMatchInput("", "One More Time", "")
	plan := BuildPlan(input)
	want := []QueryStep{
		{QueryTracks, `track:"one more time"`},
		{QueryTracks, `one more time`},
	}
	if !reflect.DeepEqual(plan.Steps, want) {
		t.Errorf("plan steps:\n got %v\nwant %v", plan.Steps, want)
	}
}

func TestBuildPlanWithoutTitleKeepsOnlyAlbumSteps(t *testing.T) {
	input := NewMatchInput("Daft Punk", "", "Discovery")
	plan := BuildPlan(input)
	want := []QueryStep{
		{QueryAlbums, `artist:"daft punk" album:"discovery"`},
		{QueryAlbums, `album:"discovery"`},
	}
	if !reflect.DeepEqual(plan.Steps, want) {
		t.Errorf("plan steps:\n got %v\nwant %v", plan.Steps, want)
	}
}

func TestBuildPlanEmptyInput(t *testing.T) {
	plan := BuildPlan(NewMatchInput("", "", ""))
	if len(plan.Steps) != 0 {
		t.Errorf("expected no steps, got %v", plan.Steps)
	}
}

func TestBuildPlanStripsAnnotationsFromQueries(t *testing.T) {
	input := NewMatchInput("Daft Punk", "One More Time (feat. Romanthony)", "")
	plan := BuildPlan(input)
	if len(plan.Steps) == 0 {
		t.Fatal("expected steps")
	}
	if got, want := plan.Steps[0].Query, `track:"one more time" artist:"daft punk"`; got != want {
		t.Errorf("first query = %q, want %q", got, want)
	}
}
