package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ayseSeed = "69afd6a2f82477020b039c42f344070119ca9cbb22204ea8bd9a4f3837996708"

func TestHash(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Hash(""))
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", Hash("abc"))
}

func TestDerive(t *testing.T) {
	got := Derive("cesur", "sabırsız", "liderlik", "kitap yazmak", "Ayşe")
	assert.Equal(t, ayseSeed, got)
	assert.True(t, Valid(got))
	assert.Len(t, got, Length)
}

func TestDeriveIgnoresCaseAndWhitespace(t *testing.T) {
	variants := [][5]string{
		{"CESUR", "Sabırsız", "LIDERLIK", "Kitap Yazmak", "AYŞE"},
		{"  cesur", "sabırsız  ", " liderlik ", "kitap yazmak\t", "\nAyşe"},
	}
	for _, v := range variants {
		assert.Equal(t, ayseSeed, Derive(v[0], v[1], v[2], v[3], v[4]), "%q", v)
	}
}

func TestDeriveDistinguishesFields(t *testing.T) {
	a := Derive("cesur", "tembel", "spor", "koşmak", "Ali")
	b := Derive("tembel", "cesur", "spor", "koşmak", "Ali")
	assert.NotEqual(t, a, b)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ayşe", Normalize("  AYŞE "))
	assert.Equal(t, "", Normalize("   "))
}

func TestFeature(t *testing.T) {
	n, err := Feature(ayseSeed, 0, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x69afd6a2), n)

	n, err = Feature(ayseSeed, 8, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(4163139330), n)

	for _, span := range [][2]int{{-1, 4}, {60, 8}, {0, 0}, {0, 17}} {
		_, err := Feature(ayseSeed, span[0], span[1])
		assert.ErrorIs(t, err, ErrOutOfRange, "span %v", span)
	}

	_, err = Feature("zz", 0, 2)
	assert.Error(t, err)
}

func TestMustFeaturePanics(t *testing.T) {
	assert.Panics(t, func() { MustFeature("abc", 0, 8) })
}

func TestUniform(t *testing.T) {
	u := Uniform(ayseSeed, 1)
	assert.InDelta(t, 0.0943, u, 1e-4)
	assert.Equal(t, u, Uniform(ayseSeed, 1))
	assert.NotEqual(t, u, Uniform(ayseSeed, 2))

	for salt := 0; salt < 1000; salt++ {
		v := Uniform(ayseSeed, salt)
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(ayseSeed))
	assert.False(t, Valid(ayseSeed[:63]))
	assert.False(t, Valid("69AFD6A2F82477020B039C42F344070119CA9CBB22204EA8BD9A4F3837996708"))
	assert.False(t, Valid("g9afd6a2f82477020b039c42f344070119ca9cbb22204ea8bd9a4f3837996708"))
}
