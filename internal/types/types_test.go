package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProspectInfoValidate(t *testing.T) {
	valid := ProspectInfo{
		FirstName: "Jane",
		LastName:  "Doe",
		City:      "Vancouver",
		State:     "BC",
		DOB:       "1990-04-15",
	}

	tests := []struct {
		name    string
		mutate  func(*ProspectInfo)
		wantErr bool
	}{
		{"valid minimal", func(_ *ProspectInfo) {}, false},
		{"valid with email", func(p *ProspectInfo) { p.Email = "jane@example.com" }, false},
		{"missing first name", func(p *ProspectInfo) { p.FirstName = "" }, true},
		{"missing city", func(p *ProspectInfo) { p.City = "" }, true},
		{"bad email", func(p *ProspectInfo) { p.Email = "not-an-email" }, true},
		{"bad dob format", func(p *ProspectInfo) { p.DOB = "15/04/1990" }, true},
		{"missing dob", func(p *ProspectInfo) { p.DOB = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProspectInfoFullName(t *testing.T) {
	assert.Equal(t, "Jane Doe", ProspectInfo{FirstName: "Jane", LastName: "Doe"}.FullName())
	assert.Equal(t, "Jane Marie Doe", ProspectInfo{FirstName: "Jane", OtherNames: "Marie", LastName: "Doe"}.FullName())
	assert.Equal(t, "Jane Doe", ProspectInfo{FirstName: " Jane ", OtherNames: "  ", LastName: "Doe"}.FullName())
}

func TestLocationUnmarshalJSON(t *testing.T) {
	t.Run("plain string", func(t *testing.T) {
		var loc Location
		require.NoError(t, json.Unmarshal([]byte(`"Vancouver, BC, Canada"`), &loc))
		assert.Equal(t, "Vancouver, BC, Canada", loc.Raw)
		assert.Equal(t, "Vancouver, BC, Canada", loc.Label())
	})

	t.Run("structured object", func(t *testing.T) {
		var loc Location
		data := `{"city":"Vancouver","state":"BC","country":"Canada","start_date":"2020-01","end_date":"2022-03"}`
		require.NoError(t, json.Unmarshal([]byte(data), &loc))
		assert.Equal(t, "Vancouver, BC, Canada", loc.Label())
		assert.Equal(t, "2020-01", loc.Start())
		assert.Equal(t, "2022-03", loc.End())
	})

	t.Run("from and to aliases", func(t *testing.T) {
		var loc Location
		require.NoError(t, json.Unmarshal([]byte(`{"city":"Toronto","from":"2018","to":"2019"}`), &loc))
		assert.Equal(t, "2018", loc.Start())
		assert.Equal(t, "2019", loc.End())
	})

	t.Run("locality beats nothing, city beats locality", func(t *testing.T) {
		var loc Location
		require.NoError(t, json.Unmarshal([]byte(`{"locality":"Burnaby","region":"BC"}`), &loc))
		assert.Equal(t, "Burnaby, BC", loc.Label())
	})
}

func TestDegreeListUnmarshalJSON(t *testing.T) {
	t.Run("single string", func(t *testing.T) {
		var d DegreeList
		require.NoError(t, json.Unmarshal([]byte(`"bachelors"`), &d))
		assert.Equal(t, DegreeList{"bachelors"}, d)
	})

	t.Run("array", func(t *testing.T) {
		var d DegreeList
		require.NoError(t, json.Unmarshal([]byte(`["bachelors","bsc"]`), &d))
		assert.Equal(t, "bachelors, bsc", d.Join())
	})
}

func TestNewCanonicalPerson(t *testing.T) {
	person := NewCanonicalPerson()

	// every list must be non-nil so presentation code can range freely
	assert.NotNil(t, person.EmploymentHistory)
	assert.NotNil(t, person.EducationHistory)
	assert.NotNil(t, person.LegalAppearances)
	assert.NotNil(t, person.PressMentions)
	assert.NotNil(t, person.SocialMediaProfiles)
	assert.NotNil(t, person.CompanyRegistrations)
	assert.NotNil(t, person.PublicComments)
	assert.NotNil(t, person.LocationHistory)
	assert.NotNil(t, person.Others)
}

func TestIdentityProfileHasPrimaryJob(t *testing.T) {
	assert.False(t, IdentityProfile{}.HasPrimaryJob())
	assert.True(t, IdentityProfile{JobTitle: "Engineer"}.HasPrimaryJob())
	assert.True(t, IdentityProfile{JobCompanyName: "Acme"}.HasPrimaryJob())
}
