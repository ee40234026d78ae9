package openapi

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tokend/xdrgen"
	"github.com/tokend/xdrgen/backend"
	"github.com/tokend/xdrgen/internal/config"
	"github.com/tokend/xdrgen/internal/testutil"
)

const assetSchema = `
//: Kinds of assets
enum AssetType
{
    ASSET_TYPE_NATIVE = 0,
    //: Four letter code
    ASSET_TYPE_CREDIT_ALPHANUM4 = 1,
    ASSET_TYPE_POOL_SHARE = 2
};

typedef opaque AccountID[32];
typedef unsigned hyper uint64;
const MAX_SIGNERS = 20;

union Asset switch (AssetType type)
{
case ASSET_TYPE_NATIVE:
    void;
case ASSET_TYPE_CREDIT_ALPHANUM4:
    struct
    {
        opaque assetCode[4];
        AccountID issuer;
    } alphaNum4;
default:
    int other;
};

//: An account
struct Account
{
    AccountID id;
    Asset* asset;
    string name<32>;
    uint64 balance;
    int signers<MAX_SIGNERS>;
    Asset pair[2];
};
`

const assetOpenAPI = `
openapi: 3.0.0
info:
  title: xdr
  version: 1.0.0
paths: {}
components:
  schemas:
    Void:
      type: string
      nullable: true
    AssetType:
      description: |-
        Kinds of assets
        - "asset_type_native": 0
        - "asset_type_credit_alphanum4": 1
          Four letter code
        - "asset_type_pool_share": 2
      type: string
      enum:
        - asset_type_native
        - asset_type_credit_alphanum4
        - asset_type_pool_share
    AccountId:
      type: string
      format: byte
    Uint64:
      type: integer
      format: uint64
    AssetAlphaNum4:
      type: object
      properties:
        AssetCode:
          type: string
          format: byte
        Issuer:
          type: string
          format: AccountId
    AssetArmAssetTypeNative:
      type: object
      properties:
        type:
          type: string
          enum: [asset_type_native]
      required: [type]
    AssetArmAssetTypeCreditAlphanum4:
      type: object
      properties:
        type:
          type: string
          enum: [asset_type_credit_alphanum4]
        AlphaNum4:
          $ref: '#/components/schemas/AssetAlphaNum4'
      required: [type, AlphaNum4]
    AssetArmDefault:
      type: object
      properties:
        type:
          type: string
          enum: [asset_type_pool_share]
        Other:
          type: integer
          format: int32
      required: [type, Other]
    Asset:
      type: object
      oneOf:
        - $ref: '#/components/schemas/AssetArmAssetTypeNative'
        - $ref: '#/components/schemas/AssetArmAssetTypeCreditAlphanum4'
        - $ref: '#/components/schemas/AssetArmDefault'
    Account:
      type: object
      description: An account
      properties:
        Id:
          type: string
          format: AccountId
        Asset:
          allOf:
            - $ref: '#/components/schemas/Asset'
          nullable: true
        Name:
          type: string
          maxLength: 32
        Balance:
          type: integer
          format: uint64
        Signers:
          type: array
          items:
            type: integer
            format: int32
          maxItems: 20
        Pair:
          type: array
          items:
            $ref: '#/components/schemas/Asset'
          minItems: 2
          maxItems: 2
`

func generate(t *testing.T, src string, opts backend.Options) (string, error) {
	t.Helper()
	root, err := xdrgen.Compile("asset.x", []byte(src))
	require.NoError(t, err)

	dir := t.TempDir()
	out := backend.NewOutput(dir, "asset.x")
	genErr := New(root, out, opts).Generate()
	require.NoError(t, out.Close())
	if genErr != nil {
		return "", genErr
	}
	data, err := os.ReadFile(filepath.Join(dir, FileName(opts.Namespace)))
	require.NoError(t, err)
	return string(data), nil
}

func TestGenerate(t *testing.T) {
	got, err := generate(t, assetSchema, backend.Options{Namespace: "stellar"})
	require.NoError(t, err)
	require.Contains(t, got, "DO NOT EDIT")
	require.Contains(t, got, "asset.x")
	testutil.ExpectYAMLEq(t, assetOpenAPI, got)
}

func TestLessInfoTypesFromConfig(t *testing.T) {
	cfg := config.New()
	cfg.OpenAPI.LessInfoTypes = nil
	cfg.OpenAPI.Title = "ledger"
	got, err := generate(t, "typedef opaque AccountID[32]; struct S { AccountID id; };", backend.Options{Config: cfg})
	require.NoError(t, err)
	testutil.ExpectYAMLEq(t, `
openapi: 3.0.0
info:
  title: ledger
  version: 1.0.0
paths: {}
components:
  schemas:
    Void:
      type: string
      nullable: true
    AccountId:
      type: string
      format: byte
    S:
      type: object
      properties:
        Id:
          $ref: '#/components/schemas/AccountId'
`, got)
}

func TestQuadrupleUnsupported(t *testing.T) {
	dir := t.TempDir()
	root, err := xdrgen.Compile("q.x", []byte("struct S { quadruple q; };"))
	require.NoError(t, err)
	out := backend.NewOutput(dir)
	err = New(root, out, backend.Options{}).Generate()
	require.NoError(t, out.Close())

	var unsupported *backend.UnsupportedConstructError
	require.True(t, errors.As(err, &unsupported))
	require.Equal(t, Language, unsupported.Backend)
	require.Equal(t, "quadruple", unsupported.Construct)

	_, statErr := os.Stat(filepath.Join(dir, FileName("")))
	require.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestDuplicateDefinitionsAreSkipped(t *testing.T) {
	var warnings []*backend.DuplicateDefinitionWarning
	got, err := generate(t, `
struct Item { int v; };
namespace other { struct Item { hyper v; }; }
`, backend.Options{OnWarning: func(w *backend.DuplicateDefinitionWarning) { warnings = append(warnings, w) }})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Equal(t, "Item", warnings[0].Name)
	require.Contains(t, got, "int32")
	require.NotContains(t, got, "int64")
}

func TestRegistered(t *testing.T) {
	f, err := backend.ForLanguage("OpenAPI")
	require.NoError(t, err)
	require.NotNil(t, f)
}
