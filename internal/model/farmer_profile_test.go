package model

import (
	"testing"
	"time"
)

func validProfile() FarmerProfile {
	return FarmerProfile{
		UserID:       7,
		FarmName:     "Green Valley Farm",
		Description:  "Family farm growing seasonal produce",
		ProfileImage: "https://assets.example/farm.jpg",
		FarmingMethods: []string{
			"Organic", "Permaculture",
		},
	}
}

func TestFarmerProfileValidateOK(t *testing.T) {
	p := validProfile()
	if err := p.Validate(time.Now()); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}
}

func TestFarmerProfileValidateRequired(t *testing.T) {
	for _, mutate := range []func(*FarmerProfile){
		func(p *FarmerProfile) { p.FarmName = "" },
		func(p *FarmerProfile) { p.Description = "" },
		func(p *FarmerProfile) { p.ProfileImage = "" },
	} {
		p := validProfile()
		mutate(&p)
		if p.Validate(time.Now()) == nil {
			t.Error("profile with missing required field accepted")
		}
	}
}

func TestFarmerProfileValidateFarmingMethods(t *testing.T) {
	p := validProfile()
	p.FarmingMethods = append(p.FarmingMethods, "Lunar")
	if p.Validate(time.Now()) == nil {
		t.Error("unknown farming method accepted")
	}
}

func TestFarmerProfileValidateCertifications(t *testing.T) {
	now := time.Now()
	p := validProfile()
	p.Certifications = []Certification{{Name: "USDA Organic", IssuedBy: "USDA", IssuedDate: now.AddDate(-1, 0, 0)}}
	if err := p.Validate(now); err != nil {
		t.Fatalf("valid certification rejected: %v", err)
	}
	p.Certifications[0].IssuedBy = ""
	if p.Validate(now) == nil {
		t.Error("certification without issuer accepted")
	}
}

func TestFarmerProfileValidateEstablishedYear(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	p := validProfile()
	p.EstablishedYear = 0
	if err := p.Validate(now); err != nil {
		t.Errorf("unset established year rejected: %v", err)
	}
	p.EstablishedYear = 1899
	if p.Validate(now) == nil {
		t.Error("established year before 1900 accepted")
	}
	p.EstablishedYear = 2027
	if p.Validate(now) == nil {
		t.Error("future established year accepted")
	}
	p.EstablishedYear = 2026
	if err := p.Validate(now); err != nil {
		t.Errorf("current year rejected: %v", err)
	}
}
