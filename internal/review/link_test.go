package review

import (
	"testing"

	"github.com/ktlens/ktlens/internal/source"
)

func TestLinkViewModelToRepository(t *testing.T) {
	vm := mustUnit(t, "ui/UserViewModel.kt", "class UserViewModel(private val repo: UserRepository) : ViewModel()")
	repo := mustUnit(t, "data/UserRepository.kt", "class UserRepository {\n  fun load() = runBlocking { api.fetch() }\n}")
	ix := source.NewIndex([]*source.Unit{vm, repo})

	findings := []Finding{
		{
			ID:        "f-vm",
			RuleID:    "ARCH-VIEWMODEL-ANDROID-VIEW",
			Locations: []Location{{Path: vm.Path, StartLine: 1, EndLine: 1}},
			Evidence:  []string{"class UserViewModel(private val repo: UserRepository)"},
		},
		{
			ID:        "f-repo",
			RuleID:    "CONC-RUN-BLOCKING",
			Locations: []Location{{Path: repo.Path, StartLine: 2, EndLine: 2}},
			Evidence:  []string{"fun load() = runBlocking { api.fetch() }"},
		},
	}
	Link(findings, ix)

	if got := findings[0].RelatedIDs; len(got) != 1 || got[0] != "f-repo" {
		t.Errorf("ViewModel finding RelatedIDs = %v, want [f-repo]", got)
	}
	if got := findings[1].RelatedIDs; len(got) != 1 || got[0] != "f-vm" {
		t.Errorf("repository finding RelatedIDs = %v, want the symmetric edge [f-vm]", got)
	}
}

func TestLinkBySharedPrefix(t *testing.T) {
	// No direct name in the evidence; the UserViewModel -> UserRepository
	// pairing comes from the unique shared prefix.
	vm := mustUnit(t, "ui/UserViewModel.kt", "class UserViewModel : ViewModel()")
	repo := mustUnit(t, "data/UserRepository.kt", "class UserRepository")
	ix := source.NewIndex([]*source.Unit{vm, repo})

	findings := []Finding{
		{ID: "f-vm", Locations: []Location{{Path: vm.Path, StartLine: 1, EndLine: 1}}, Evidence: []string{"class UserViewModel"}},
		{ID: "f-repo", Locations: []Location{{Path: repo.Path, StartLine: 1, EndLine: 1}}, Evidence: []string{"class UserRepository"}},
	}
	Link(findings, ix)

	if len(findings[0].RelatedIDs) != 1 || len(findings[1].RelatedIDs) != 1 {
		t.Errorf("shared-prefix link missing: %v / %v", findings[0].RelatedIDs, findings[1].RelatedIDs)
	}
}

func TestLinkNeverSelfReferences(t *testing.T) {
	vm := mustUnit(t, "ui/UserViewModel.kt", "class UserViewModel(private val repo: UserRepository) : ViewModel()")
	repo := mustUnit(t, "data/UserRepository.kt", "class UserRepository")
	ix := source.NewIndex([]*source.Unit{vm, repo})

	findings := []Finding{
		{ID: "f-1", Locations: []Location{{Path: vm.Path, StartLine: 1, EndLine: 1}}, Evidence: []string{"val repo: UserRepository"}},
		{ID: "f-2", Locations: []Location{{Path: vm.Path, StartLine: 1, EndLine: 1}}, Evidence: []string{"val repo: UserRepository"}},
	}
	Link(findings, ix)
	for _, f := range findings {
		for _, id := range f.RelatedIDs {
			if id == f.ID {
				t.Errorf("finding %s links to itself", f.ID)
			}
		}
	}
}

func TestLinkLeavesUnrelatedAlone(t *testing.T) {
	u := mustUnit(t, "Util.kt", "val y = a!!")
	ix := source.NewIndex([]*source.Unit{u})
	findings := []Finding{{ID: "f", Locations: []Location{{Path: u.Path, StartLine: 1, EndLine: 1}}, Evidence: []string{"val y = a!!"}}}
	Link(findings, ix)
	if len(findings[0].RelatedIDs) != 0 {
		t.Errorf("unrelated finding gained links: %v", findings[0].RelatedIDs)
	}
}
