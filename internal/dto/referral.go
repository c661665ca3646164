package dto

import (
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
)

type JoinRequestDTO struct {
	ReferralCode string `json:"referral_code" validate:"omitempty,refcode" example:"ELX1234567897"`
}

type PlacementDTO struct {
	ChainID         int    `json:"chain_id" example:"3"`
	ParentID        int    `json:"parent_id,omitempty" example:"17"`
	PositionInChain int    `json:"position_in_chain" example:"12"`
	PlacementType   string `json:"placement_type" example:"direct"`
}

func ToPlacementDTO(r *domain.PlacementResult) *PlacementDTO {
	if r == nil {
		return nil
	}
	return &PlacementDTO{
		ChainID:         r.ChainID,
		ParentID:        r.ParentID,
		PositionInChain: r.PositionInChain,
		PlacementType:   string(r.PlacementType),
	}
}

type ReferralDTO struct {
	UserID          int       `json:"user_id" example:"18"`
	ChainID         int       `json:"chain_id" example:"3"`
	PositionInChain int       `json:"position_in_chain" example:"4"`
	PlacementType   string    `json:"placement_type" example:"system"`
	IsActive        bool      `json:"is_active" example:"true"`
	EarningsPaid    string    `json:"earnings_paid" example:"200.00"`
	JoinedAt        time.Time `json:"joined_at" example:"2026-03-01T09:00:00Z"`
}

type ReferralsResponseDTO struct {
	Direct      []ReferralDTO `json:"direct"`
	System      []ReferralDTO `json:"system"`
	DirectCount int           `json:"direct_count" example:"2"`
	SystemCount int           `json:"system_count" example:"0"`
}

func ToReferralsDTO(direct, system []domain.Referral) ReferralsResponseDTO {
	return ReferralsResponseDTO{
		Direct:      toReferralDTOs(direct),
		System:      toReferralDTOs(system),
		DirectCount: len(direct),
		SystemCount: len(system),
	}
}

func toReferralDTOs(refs []domain.Referral) []ReferralDTO {
	out := make([]ReferralDTO, 0, len(refs))
	for _, r := range refs {
		out = append(out, ReferralDTO{
			UserID:          r.ChildID,
			ChainID:         r.ChainID,
			PositionInChain: r.PositionInChain,
			PlacementType:   string(r.PlacementType),
			IsActive:        r.IsActive,
			EarningsPaid:    r.EarningsPaid.StringFixed(2),
			JoinedAt:        r.CreatedAt,
		})
	}
	return out
}

type TreeNodeDTO struct {
	UserID        int           `json:"user_id" example:"18"`
	PlacementType string        `json:"placement_type" example:"direct"`
	Depth         int           `json:"depth" example:"1"`
	Children      []TreeNodeDTO `json:"children"`
}

func ToTreeDTO(n *domain.TreeNode) TreeNodeDTO {
	node := TreeNodeDTO{
		UserID:        n.UserID,
		PlacementType: string(n.PlacementType),
		Depth:         n.Depth,
		Children:      make([]TreeNodeDTO, 0, len(n.Children)),
	}
	for _, c := range n.Children {
		node.Children = append(node.Children, ToTreeDTO(c))
	}
	return node
}

type ChainMemberDTO struct {
	UserID          int    `json:"user_id" example:"18"`
	ParentID        int    `json:"parent_id,omitempty" example:"17"`
	PositionInChain int    `json:"position_in_chain" example:"4"`
	PlacementType   string `json:"placement_type" example:"system"`
}

type ChainResponseDTO struct {
	ChainID    int              `json:"chain_id" example:"3"`
	Completed  int              `json:"completed" example:"12"`
	Total      int              `json:"total" example:"31"`
	Percentage float64          `json:"percentage" example:"38.71"`
	IsComplete bool             `json:"is_complete" example:"false"`
	Members    []ChainMemberDTO `json:"members"`
}

func ToChainDTO(p *domain.ChainProgress, members []domain.ChainMember) ChainResponseDTO {
	resp := ChainResponseDTO{
		ChainID:    p.ChainID,
		Completed:  p.Completed,
		Total:      p.Total,
		Percentage: p.Percentage,
		IsComplete: p.IsComplete,
		Members:    make([]ChainMemberDTO, 0, len(members)),
	}
	for _, m := range members {
		resp.Members = append(resp.Members, ChainMemberDTO{
			UserID:          m.UserID,
			ParentID:        m.ParentID,
			PositionInChain: m.PositionInChain,
			PlacementType:   string(m.PlacementType),
		})
	}
	return resp
}

type ReferralLinkResponseDTO struct {
	ReferralCode string `json:"referral_code" example:"ELX1234567897"`
	ReferralLink string `json:"referral_link" example:"https://elevatex.app/signup?ref=ELX1234567897"`
	QRCode       string `json:"qr_code" example:"data:image/png;base64,iVBORw0KGgo..."`
}
