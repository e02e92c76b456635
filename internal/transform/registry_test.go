package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		name     string
		spec     string
		wantName string
		wantErr  bool
	}{
		{"income", "adjust_income:percent=5", "adjust_income", false},
		{"spaces", " remove_debt : id = card ", "remove_debt", false},
		{"add debt", "add_debt:name=Loan,balance=5000,payment=200,rate=9.5,type=personal_loan", "add_debt", false},
		{"fixed expense", "set_fixed_expense:category=childcare,amount=0", "set_fixed_expense", false},
		{"aging", "age_profile:years=3", "age_profile", false},
		{"dream", "set_dream_age:age=60", "set_dream_age", false},
		{"missing colon", "adjust_income", "", true},
		{"bad pair", "adjust_income:percent", "", true},
		{"unknown transform", "buy_boat:size=40", "", true},
		{"missing param", "update_debt_payment:id=car", "", true},
		{"bad number", "adjust_income:percent=lots", "", true},
		{"bad int", "age_profile:years=1.5", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := registry.ParseTransformSpec(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, tr.Name())
		})
	}
}

func TestParseTransformSpecs_AppliesInOrder(t *testing.T) {
	registry := NewTransformRegistry()
	transforms, err := registry.ParseTransformSpecs([]string{
		"update_debt_balance:id=car,balance=9000",
		"remove_debt:id=card",
	})
	require.NoError(t, err)

	out, err := ApplyTransforms(createTestProfile(), transforms)
	require.NoError(t, err)
	require.Len(t, out.Debts, 1)
	assert.True(t, out.Debts[0].Balance.Equal(dec("9000")))
}

func TestRegistryList(t *testing.T) {
	names := NewTransformRegistry().List()
	assert.Len(t, names, 9)
	assert.Equal(t, "add_debt", names[0])
	assert.Contains(t, names, "set_fixed_expense")
}

func TestBuiltInTemplates(t *testing.T) {
	profile := createTestProfile()
	registry := CreateBuiltInTemplates(profile)

	assert.Equal(t, []string{
		"debt_free", "dream_later_5yr", "dream_sooner_5yr", "no_childcare",
		"pay_cut_10pct", "raise_10pct", "raise_5pct", "trim_spending_10pct", "trim_spending_20pct",
	}, registry.List())

	tmpl, ok := registry.Get("DEBT_FREE")
	require.True(t, ok)
	out, err := ApplyTemplate(profile, tmpl)
	require.NoError(t, err)
	assert.Empty(t, out.Debts)
	assert.Len(t, profile.Debts, 2)

	profile.Debts = nil
	profile.Fixed.Childcare = dec("0")
	profile.Dream = nil
	slim := CreateBuiltInTemplates(profile)
	_, ok = slim.Get("debt_free")
	assert.False(t, ok)
	_, ok = slim.Get("no_childcare")
	assert.False(t, ok)
	_, ok = slim.Get("dream_later_5yr")
	assert.False(t, ok)
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"raise_5pct", "debt_free"}, ParseTemplateList(" raise_5pct, ,debt_free "))
}

func TestGetTemplateHelp(t *testing.T) {
	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))
	help := GetTemplateHelp(CreateBuiltInTemplates(createTestProfile()))
	assert.Contains(t, help, "raise_5pct")
	assert.Contains(t, help, "Every current debt is paid off")
}
