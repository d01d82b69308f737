package ratecard

import "github.com/rpggio/quotestudio/internal/domain/project"

// Default returns the studio's starting rate card.
func Default() Card {
	return New([]Entry{
		{ID: "r1", RoleName: "創意總監 Creative Director", Category: project.CategoryCreativeStrategy, Price: 8000},
		{ID: "r2", RoleName: "藝術總監 Art Director", Category: project.CategoryCreativeStrategy, Price: 6000},
		{ID: "r3", RoleName: "專案經理 Project Manager", Category: project.CategoryProjectManagement, Price: 4500},
		{ID: "r4", RoleName: "資深設計師 Senior Designer", Category: project.CategoryMotionProduction, Price: 3500},
		{ID: "r5", RoleName: "3D 動態設計師 3D Artist", Category: project.CategoryMotionProduction, Price: 4000},
		{ID: "r6", RoleName: "2D/VFX 特效師 2D/VFX Artist", Category: project.CategoryPostProduction, Price: 3000},
	})
}
