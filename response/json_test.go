package response

import (
	"math/big"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

func TestMarshalJSON(t *testing.T) {
	type record struct {
		ID   int    `json:"id"`
		Name string `json:"name,omitempty"`
	}
	type item struct {
		ID  int64    `json:"id"`
		Big *big.Int `json:"big"`
	}
	type Audit struct {
		Version uint64 `json:"version"`
		Owner   string `json:"owner"`
	}
	type account struct {
		Audit
		Balance  big.Int `json:"balance"`
		Owner    string  `json:"owner"`
		Secret   string  `json:"-"`
		Count    int64   `json:"count,string"`
		Note     string  `json:"note,omitempty"`
		internal int64
	}
	testCases := []struct {
		description string
		value       interface{}
		expect      string
	}{
		{
			description: "nil value",
			value:       nil,
			expect:      `null`,
		},
		{
			description: "sorted map keys",
			value:       map[string]interface{}{"name": "a", "id": 1},
			expect:      `{"id":1,"name":"a"}`,
		},
		{
			description: "max safe integer stays numeric",
			value:       map[string]interface{}{"n": int64(9007199254740991)},
			expect:      `{"n":9007199254740991}`,
		},
		{
			description: "integer above safe range is stringified",
			value:       map[string]interface{}{"n": int64(9007199254740993)},
			expect:      `{"n":"9007199254740993"}`,
		},
		{
			description: "integer below safe range is stringified",
			value:       map[string]interface{}{"n": int64(-9007199254740993)},
			expect:      `{"n":"-9007199254740993"}`,
		},
		{
			description: "unsigned max",
			value:       map[string]interface{}{"n": uint64(18446744073709551615)},
			expect:      `{"n":"18446744073709551615"}`,
		},
		{
			description: "big int is always stringified",
			value:       map[string]interface{}{"small": big.NewInt(5), "big": new(big.Int).SetUint64(9007199254740993)},
			expect:      `{"big":"9007199254740993","small":"5"}`,
		},
		{
			description: "nested slices",
			value:       map[string]interface{}{"items": []int64{1, 9007199254740993}},
			expect:      `{"items":[1,"9007199254740993"]}`,
		},
		{
			description: "typed map",
			value:       map[string]int64{"b": 2, "a": 9223372036854775807},
			expect:      `{"a":"9223372036854775807","b":2}`,
		},
		{
			description: "html characters are not escaped",
			value:       map[string]interface{}{"html": "<a>&"},
			expect:      `{"html":"<a>&"}`,
		},
		{
			description: "bytes are base64 encoded",
			value:       map[string]interface{}{"data": []byte("hi")},
			expect:      `{"data":"aGk="}`,
		},
		{
			description: "struct tags are honored",
			value:       map[string]interface{}{"record": &record{ID: 3}},
			expect:      `{"record":{"id":3}}`,
		},
		{
			description: "struct fields with large integers",
			value:       &item{ID: 9007199254740993, Big: big.NewInt(9007199254740993)},
			expect:      `{"id":"9007199254740993","big":"9007199254740993"}`,
		},
		{
			description: "nested struct keeps field order",
			value:       map[string]interface{}{"item": item{ID: 9007199254740993, Big: big.NewInt(5)}},
			expect:      `{"item":{"id":"9007199254740993","big":"5"}}`,
		},
		{
			description: "struct with nil big int",
			value:       item{ID: 1},
			expect:      `{"id":1,"big":null}`,
		},
		{
			description: "embedded struct, skipped and quoted fields",
			value: &account{
				Audit:    Audit{Version: 18446744073709551615, Owner: "audit"},
				Balance:  *big.NewInt(12),
				Owner:    "acme",
				Secret:   "s",
				Count:    9007199254740993,
				internal: 1,
			},
			expect: `{"version":"18446744073709551615","balance":"12","owner":"acme","count":"9007199254740993"}`,
		},
		{
			description: "integer keyed map",
			value:       map[int]interface{}{2: "b", 1: int64(9007199254740993)},
			expect:      `{"1":"9007199254740993","2":"b"}`,
		},
		{
			description: "struct slice",
			value:       []item{{ID: -9007199254740993}},
			expect:      `[{"id":"-9007199254740993","big":null}]`,
		},
		{
			description: "decoded numbers",
			value:       map[string]interface{}{"small": json.Number("42"), "float": json.Number("1.5e300"), "big": json.Number("9007199254740993")},
			expect:      `{"big":"9007199254740993","float":1.5e300,"small":42}`,
		},
		{
			description: "nil pointer",
			value:       map[string]interface{}{"record": (*record)(nil)},
			expect:      `{"record":null}`,
		},
	}

	for _, testCase := range testCases {
		actual, err := marshalJSON(testCase.value)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestMarshalJSON_Cycle(t *testing.T) {
	aMap := map[string]interface{}{}
	aMap["self"] = aMap
	_, err := marshalJSON(aMap)
	assert.NotNil(t, err)

	shared := map[string]interface{}{"id": 1}
	actual, err := marshalJSON(map[string]interface{}{"a": shared, "b": shared})
	assert.Nil(t, err)
	assert.Equal(t, `{"a":{"id":1},"b":{"id":1}}`, actual)
}
