package coin

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/weavetest/assert"
)

func TestCompareCoin(t *testing.T) {
	cases := map[string]struct {
		a       Coin
		b       Coin
		wantRes int
	}{
		"a greater than b": {
			a:       NewCoin(20, "ABC"),
			b:       NewCoin(19, "ABC"),
			wantRes: 1,
		},
		"a smaller than b": {
			a:       NewCoin(1, "FOO"),
			b:       NewCoin(2, "FOO"),
			wantRes: -1,
		},
		"zero value coins": {
			a:       Coin{},
			b:       Coin{},
			wantRes: 0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantRes, tc.a.Compare(tc.b))
		})
	}
}

func TestAddCoin(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		want    Coin
		wantErr *errors.Error
	}{
		"same currency": {
			a:    NewCoin(5, "ABC"),
			b:    NewCoin(7, "ABC"),
			want: NewCoin(12, "ABC"),
		},
		"zero value is neutral": {
			a:    Coin{},
			b:    NewCoin(7, "ABC"),
			want: NewCoin(7, "ABC"),
		},
		"different currency": {
			a:       NewCoin(5, "ABC"),
			b:       NewCoin(7, "XYZ"),
			wantErr: errors.ErrCurrency,
		},
		"overflow": {
			a:       NewCoin(math.MaxUint64, "ABC"),
			b:       NewCoin(1, "ABC"),
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestSubtractCoin(t *testing.T) {
	got, err := NewCoin(10, "ABC").Subtract(NewCoin(4, "ABC"))
	assert.Nil(t, err)
	assert.Equal(t, NewCoin(6, "ABC"), got)

	_, err = NewCoin(3, "ABC").Subtract(NewCoin(4, "ABC"))
	assert.IsErr(t, errors.ErrInsufficientAmount, err)

	_, err = NewCoin(3, "ABC").Subtract(NewCoin(1, "XYZ"))
	assert.IsErr(t, errors.ErrCurrency, err)
}

func TestValidCoin(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr *errors.Error
	}{
		"valid":           {coin: NewCoin(1, "ABC")},
		"zero is valid":   {coin: NewCoin(0, "ABCD")},
		"lower case":      {coin: NewCoin(1, "abc"), wantErr: errors.ErrCurrency},
		"too long":        {coin: NewCoin(1, "ABCDE"), wantErr: errors.ErrCurrency},
		"missing ticker":  {coin: NewCoin(1, ""), wantErr: errors.ErrCurrency},
		"ticker with num": {coin: NewCoin(1, "AB1"), wantErr: errors.ErrCurrency},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.coin.Validate())
		})
	}
}

func TestCoinJSON(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Coin
		wantErr *errors.Error
	}{
		"human format": {
			raw:  `"42 IOV"`,
			want: NewCoin(42, "IOV"),
		},
		"structured": {
			raw:  `{"ticker": "ETH", "amount": 7}`,
			want: NewCoin(7, "ETH"),
		},
		"bad human format": {
			raw:     `"4.2 IOV"`,
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got Coin
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}

	c := NewCoin(12, "IOV")
	parsed, err := ParseHumanFormat(c.String())
	assert.Nil(t, err)
	assert.Equal(t, c, parsed)
}

func TestCoinSerialization(t *testing.T) {
	c := NewCoinp(123, "IOV")
	raw, err := c.Marshal()
	assert.Nil(t, err)

	var got Coin
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, *c, got)
}
