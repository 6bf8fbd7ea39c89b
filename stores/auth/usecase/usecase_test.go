package usecase

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/domain"
)

type testsuite struct {
	suite.Suite

	ctx ctx.Ctx
	im  domain.AuthUsecase
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) SetupTest() {
	ts.ctx = ctx.Background()
	ts.im = New("secret")
}

func (ts *testsuite) TestSignAndParse() {
	address := domain.Address("0xAbCd000000000000000000000000000000000001")

	token, err := ts.im.SignToken(ts.ctx, address)
	ts.Require().NoError(err)
	ts.Require().NotEmpty(token)

	parsed, err := ts.im.ParseToken(ts.ctx, token)
	ts.Require().NoError(err)
	ts.Equal(address.ToLowerStr(), parsed)
}

func (ts *testsuite) TestParseInvalidToken() {
	_, err := ts.im.ParseToken(ts.ctx, "not-a-token")
	ts.Error(err)

	// token signed with a different secret is rejected
	other := New("other-secret")
	token, err := other.SignToken(ts.ctx, "0xabc")
	ts.Require().NoError(err)
	_, err = ts.im.ParseToken(ts.ctx, token)
	ts.Error(err)
}
